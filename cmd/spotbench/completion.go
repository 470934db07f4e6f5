// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/spotbench/internal/errors"
)

// bashCompletionTemplate is the bash completion script for spotbench.
const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for spotbench
# Installation:
#   source <(spotbench completion bash)
#   Or add to ~/.bashrc:
#   echo 'source <(spotbench completion bash)' >> ~/.bashrc

_spotbench_completion() {
    local cur prev commands
    commands="init convert findings methods completion"

    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    if [ $COMP_CWORD -eq 1 ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "--version --config --json --quiet --no-color --verbose" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    local cmd="${COMP_WORDS[1]}"
    case "${cmd}" in
        init)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--force --yes --project-id --report --output-dir --sources" -- ${cur}) )
            fi
            ;;
        convert)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--json --strict" -- ${cur}) )
            fi
            ;;
        findings)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--report --output-dir --sources --source-exclude --stdout --format --max-rank --max-priority --include --exclude --detector-version --workers --metrics-file" -- ${cur}) )
            elif [[ ${prev} == --format ]] ; then
                COMPREPLY=( $(compgen -W "yaml json" -- ${cur}) )
            elif [[ ${prev} == --report || ${prev} == --output-dir || ${prev} == --sources || ${prev} == --metrics-file ]] ; then
                COMPREPLY=( $(compgen -f -- ${cur}) )
            fi
            ;;
        methods)
            if [[ ${cur} == -* ]] ; then
                COMPREPLY=( $(compgen -W "--json --format --workers --exclude" -- ${cur}) )
            else
                COMPREPLY=( $(compgen -d -- ${cur}) )
            fi
            ;;
        completion)
            if [ $COMP_CWORD -eq 2 ]; then
                COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            fi
            ;;
    esac
}

complete -F _spotbench_completion spotbench
`

// zshCompletionTemplate is the zsh completion script for spotbench.
const zshCompletionTemplate = `#compdef spotbench

# Zsh completion script for spotbench
# Installation:
#   1. Ensure compinit is loaded (add to ~/.zshrc if not present):
#      autoload -U compinit; compinit
#   2. Save this script to a directory in your fpath:
#      spotbench completion zsh > "${fpath[1]}/_spotbench"
#   3. Reload completions:
#      rm -f ~/.zcompdump; compinit

_spotbench() {
    local -a commands
    commands=(
        'init:Create .spotbench.yaml configuration'
        'convert:Convert JVM method descriptors'
        'findings:Convert a SpotBugs report into findings'
        'methods:List methods declared in Java sources'
        'completion:Generate shell completion script'
    )

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--config[Path to .spotbench.yaml]:config file:_files -g "*.yaml"' \
        '--json[Output as JSON]' \
        '(-q --quiet)'{-q,--quiet}'[Suppress progress and informational output]' \
        '--no-color[Disable colored output]' \
        '*'{-v,--verbose}'[Increase log verbosity]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                init)
                    _arguments \
                        '--force[Overwrite existing configuration]' \
                        '(-y --yes)'{-y,--yes}'[Non-interactive mode]' \
                        '--project-id[Project identifier]:project id:' \
                        '--report[SpotBugs XML report]:report:_files -g "*.xml"' \
                        '--output-dir[Findings output directory]:directory:_directories' \
                        '--sources[Java source roots]:directories:_directories'
                    ;;
                convert)
                    _arguments \
                        '--json[Output as JSON lines]' \
                        '--strict[Fail on inputs that are not descriptors]' \
                        '*:descriptor:'
                    ;;
                findings)
                    _arguments \
                        '--report[SpotBugs XML report]:report:_files -g "*.xml"' \
                        '--output-dir[Findings output directory]:directory:_directories' \
                        '--sources[Java source roots]:directories:_directories' \
                        '--source-exclude[Source path globs to skip]:pattern:' \
                        '--stdout[Write findings to stdout]' \
                        '--format[Output format]:format:(yaml json)' \
                        '--max-rank[Keep bugs with rank <= N]:rank:' \
                        '--max-priority[Keep bugs with priority <= N]:priority:(1 2 3)' \
                        '--include[Bug pattern globs to keep]:pattern:' \
                        '--exclude[Bug pattern globs to drop]:pattern:' \
                        '--detector-version[Detector version for run.yml]:version:' \
                        '--workers[Parallel source parsers]:workers:' \
                        '--metrics-file[Write conversion metrics]:file:_files'
                    ;;
                methods)
                    _arguments \
                        '--json[Output as JSON]' \
                        '--format[Output format]:format:(text json yaml)' \
                        '--workers[Parallel source parsers]:workers:' \
                        '--exclude[Source path globs to skip]:pattern:' \
                        '*:source root:_directories'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_spotbench
`

// fishCompletionTemplate is the fish completion script for spotbench.
const fishCompletionTemplate = `# Fish completion script for spotbench
# Installation:
#   1. Load completions for current session:
#      spotbench completion fish | source
#   2. Install permanently:
#      spotbench completion fish > ~/.config/fish/completions/spotbench.fish

# Commands
complete -c spotbench -f -n "__fish_use_subcommand" -a "init" -d "Create .spotbench.yaml configuration"
complete -c spotbench -f -n "__fish_use_subcommand" -a "convert" -d "Convert JVM method descriptors"
complete -c spotbench -f -n "__fish_use_subcommand" -a "findings" -d "Convert a SpotBugs report into findings"
complete -c spotbench -f -n "__fish_use_subcommand" -a "methods" -d "List methods declared in Java sources"
complete -c spotbench -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# Global flags
complete -c spotbench -l version -d "Show version and exit"
complete -c spotbench -l config -d "Path to .spotbench.yaml" -r
complete -c spotbench -l json -d "Output as JSON"
complete -c spotbench -s q -l quiet -d "Suppress progress and informational output"
complete -c spotbench -l no-color -d "Disable colored output"
complete -c spotbench -s v -l verbose -d "Increase log verbosity"

# init command flags
complete -c spotbench -n "__fish_seen_subcommand_from init" -l force -d "Overwrite existing configuration"
complete -c spotbench -n "__fish_seen_subcommand_from init" -s y -l yes -d "Non-interactive mode"
complete -c spotbench -n "__fish_seen_subcommand_from init" -l project-id -d "Project identifier" -r
complete -c spotbench -n "__fish_seen_subcommand_from init" -l report -d "SpotBugs XML report" -r
complete -c spotbench -n "__fish_seen_subcommand_from init" -l output-dir -d "Findings output directory" -r
complete -c spotbench -n "__fish_seen_subcommand_from init" -l sources -d "Java source roots" -r

# convert command flags
complete -c spotbench -n "__fish_seen_subcommand_from convert" -l json -d "Output as JSON lines"
complete -c spotbench -n "__fish_seen_subcommand_from convert" -l strict -d "Fail on inputs that are not descriptors"

# findings command flags
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l report -d "SpotBugs XML report" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l output-dir -d "Findings output directory" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l sources -d "Java source roots" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l source-exclude -d "Source path globs to skip" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l stdout -d "Write findings to stdout"
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l format -d "Output format" -r -f -a "yaml json"
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l max-rank -d "Keep bugs with rank <= N" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l max-priority -d "Keep bugs with priority <= N" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l include -d "Bug pattern globs to keep" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l exclude -d "Bug pattern globs to drop" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l detector-version -d "Detector version for run.yml" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l workers -d "Parallel source parsers" -r
complete -c spotbench -n "__fish_seen_subcommand_from findings" -l metrics-file -d "Write conversion metrics" -r

# methods command flags
complete -c spotbench -n "__fish_seen_subcommand_from methods" -l json -d "Output as JSON"
complete -c spotbench -n "__fish_seen_subcommand_from methods" -l format -d "Output format" -r -f -a "text json yaml"
complete -c spotbench -n "__fish_seen_subcommand_from methods" -l workers -d "Parallel source parsers" -r
complete -c spotbench -n "__fish_seen_subcommand_from methods" -l exclude -d "Source path globs to skip" -r

# completion command arguments
complete -c spotbench -n "__fish_seen_subcommand_from completion" -f -a "bash" -d "Generate bash completion script"
complete -c spotbench -n "__fish_seen_subcommand_from completion" -f -a "zsh" -d "Generate zsh completion script"
complete -c spotbench -n "__fish_seen_subcommand_from completion" -f -a "fish" -d "Generate fish completion script"
`

// completionScripts maps shell names to their completion script.
var completionScripts = map[string]string{
	"bash": bashCompletionTemplate,
	"zsh":  zshCompletionTemplate,
	"fish": fishCompletionTemplate,
}

// runCompletion executes the 'completion' CLI command, writing the
// completion script for bash, zsh or fish to stdout.
//
// Examples:
//
//	source <(spotbench completion bash)
//	spotbench completion zsh > "${fpath[1]}/_spotbench"
//	spotbench completion fish | source
func runCompletion(args []string) {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: spotbench completion <shell>

Description:
  Generate shell completion scripts for bash, zsh, or fish.

Arguments:
  shell    Shell type: bash, zsh, or fish (required)

Installation:
  Bash:  echo 'source <(spotbench completion bash)' >> ~/.bashrc
  Zsh:   spotbench completion zsh > "${fpath[1]}/_spotbench"
  Fish:  spotbench completion fish > ~/.config/fish/completions/spotbench.fish

After installing completions, restart your shell or source your rc file.

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'spotbench completion bash', 'spotbench completion zsh', or 'spotbench completion fish'",
		), false)
	}

	if err := writeCompletion(os.Stdout, fs.Arg(0)); err != nil {
		errors.FatalError(err, false)
	}
}

func writeCompletion(w io.Writer, shell string) error {
	script, ok := completionScripts[shell]
	if !ok {
		return errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'spotbench completion bash', 'spotbench completion zsh', or 'spotbench completion fish'",
		)
	}
	_, err := io.WriteString(w, script)
	return err
}

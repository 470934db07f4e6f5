// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package javasrc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

const constructorName = "<init>"

// walkContext carries the enclosing type while walking a file.
type walkContext struct {
	content  []byte
	file     string
	class    string
	typeVars map[string]string
	methods  *[]Method
}

// ParseSource extracts the methods declared in one Java file.
//
// Files with syntax errors are still walked; Tree-sitter recovers around the
// broken region and the remaining declarations are returned.
func ParseSource(ctx context.Context, file string, content []byte, logger *slog.Logger) ([]Method, error) {
	if logger == nil {
		logger = slog.Default()
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		logger.Warn("javasrc.parse.syntax_errors",
			"path", file,
			"error_count", countErrors(root),
		)
	}

	var methods []Method
	walk(root, &walkContext{
		content:  content,
		file:     file,
		typeVars: map[string]string{},
		methods:  &methods,
	})
	return methods, nil
}

func walk(node *sitter.Node, ctx *walkContext) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration", "annotation_type_declaration":
		walkType(node, ctx)
		return
	case "method_declaration":
		addMethod(node, ctx, "")
	case "constructor_declaration", "compact_constructor_declaration":
		addMethod(node, ctx, constructorName)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), ctx)
	}
}

// walkType descends into a type body with the type's name and type
// parameters in scope.
func walkType(node *sitter.Node, ctx *walkContext) {
	inner := *ctx
	if name := node.ChildByFieldName("name"); name != nil {
		inner.class = name.Content(ctx.content)
	}
	inner.typeVars = withTypeParams(node, ctx.content, ctx.typeVars)

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			walk(body.NamedChild(i), &inner)
		}
	}
}

func addMethod(node *sitter.Node, ctx *walkContext, name string) {
	if name == "" {
		n := node.ChildByFieldName("name")
		if n == nil {
			return
		}
		name = n.Content(ctx.content)
	}

	typeVars := withTypeParams(node, ctx.content, ctx.typeVars)
	var params []string
	if list := node.ChildByFieldName("parameters"); list != nil {
		params = parameterTypes(list, ctx.content, typeVars)
	}

	*ctx.methods = append(*ctx.methods, Method{
		Class:     ctx.class,
		Name:      name,
		Params:    params,
		File:      ctx.file,
		StartLine: int(node.StartPoint().Row) + 1,
	})
}

// parameterTypes normalizes the types of a formal_parameters node.
func parameterTypes(list *sitter.Node, content []byte, typeVars map[string]string) []string {
	var out []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		switch p.Type() {
		case "formal_parameter":
			typeNode := p.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			t := normalizeType(typeNode.Content(content), typeVars)
			// C-style arrays: String args[]
			if dims := p.ChildByFieldName("dimensions"); dims != nil {
				t += strings.Repeat("[]", strings.Count(dims.Content(content), "["))
			}
			out = append(out, t)

		case "spread_parameter":
			if typeNode := firstTypeChild(p); typeNode != nil {
				out = append(out, normalizeType(typeNode.Content(content), typeVars)+"[]")
			}
		}
	}
	return out
}

func firstTypeChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		if c.Type() != "modifiers" && c.Type() != "variable_declarator" {
			return c
		}
	}
	return nil
}

// withTypeParams returns typeVars extended with the type parameters declared
// on node, each mapped to the simple name of its first bound or Object.
func withTypeParams(node *sitter.Node, content []byte, typeVars map[string]string) map[string]string {
	tps := node.ChildByFieldName("type_parameters")
	if tps == nil {
		return typeVars
	}

	out := make(map[string]string, len(typeVars)+int(tps.NamedChildCount()))
	for k, v := range typeVars {
		out[k] = v
	}
	for i := 0; i < int(tps.NamedChildCount()); i++ {
		tp := tps.NamedChild(i)
		if tp.Type() != "type_parameter" {
			continue
		}
		var name, bound string
		for j := 0; j < int(tp.NamedChildCount()); j++ {
			c := tp.NamedChild(j)
			switch c.Type() {
			case "type_identifier", "identifier":
				if name == "" {
					name = c.Content(content)
				}
			case "type_bound":
				if c.NamedChildCount() > 0 {
					bound = normalizeType(c.NamedChild(0).Content(content), out)
				}
			}
		}
		if name == "" {
			continue
		}
		if bound == "" {
			bound = "Object"
		}
		out[name] = bound
	}
	return out
}

func countErrors(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	n := 0
	if node.IsError() || node.IsMissing() {
		n++
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		n += countErrors(node.Child(i))
	}
	return n
}

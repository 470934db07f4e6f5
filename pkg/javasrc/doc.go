// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package javasrc indexes method declarations in Java source trees.
//
// Sources are parsed with Tree-sitter and every method and constructor is
// recorded with its parameter types in the notation produced by the
// descriptor converter, so a finding such as
//
//	com/acme/Parser.java  parse(short[], SType)
//
// can be checked against the declaration
//
//	void parse(short[] data, org.test.govind.SType type)
//
// Parameter types are normalized the way a descriptor would render them:
// generic arguments are erased, type variables become their first bound (or
// Object), qualifiers are dropped and varargs become arrays. Constructors are
// recorded as "<init>".
package javasrc

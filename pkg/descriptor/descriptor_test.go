// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package descriptor

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		// Primitives
		{"int", "(I)V", "int"},
		{"boolean", "(Z)V", "boolean"},
		{"all primitives", "(BCDFIJSZ)V", "byte, char, double, float, int, long, short, boolean"},

		// Arrays
		{"int array", "([I)V", "int[]"},
		{"string array", "([Ljava/lang/String;)V", "String[]"},
		{"custom array", "([Lcom/acme/Widget;)V", "Widget[]"},
		{"two dimensional", "([[D)V", "double[][]"},
		{"two dimensional custom", "([[Lcom/acme/Cell;)V", "Cell[][]"},

		// References
		{"string", "(Ljava/lang/String;)V", "String"},
		{"custom", "(Lcom/acme/Widget;)V", "Widget"},
		{"nested class", "(Lcom/acme/Outer$Inner;)V", "Inner"},
		{"deeply nested class", "(Lcom/acme/A$B$C;)Z", "C"},
		{"default package", "(LWidget;)V", "Widget"},
		{"name ending in String", "(Lcom/acme/MyString;)V", "MyString"},

		// Mixed chunks
		{"mixed", "(ILjava/lang/String;[I)V", "int, String, int[]"},
		{"primitives before reference", "(IJLjava/util/List;Z)V", "int, long, List, boolean"},
		{"short array then custom", "([SLorg/test/govind/SType;)V", "short[], SType"},
		{"custom starting with primitive letter", "(Lorg/test/Ilist;I)V", "Ilist, int"},
		{"two references", "(Ljava/lang/Object;Ljava/lang/String;)Ljava/lang/Object;", "Object, String"},

		// Return type is ignored
		{"zero arity with return", "()Ljava/lang/String;", ""},
		{"zero arity void", "()V", ""},
		{"return array ignored", "(J)[Lcom/acme/Widget;", "long"},

		// Malformed input degrades
		{"missing close paren", "(IZ", "int, boolean"},
		{"unterminated reference", "(Ljava/lang/String)V", "String"},
		{"unknown code skipped", "(IXV)V", "int"},
		{"dangling array marker", "(I[)V", "int"},
		{"empty reference skipped", "(L;I)V", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Convert(tt.desc)
			if !ok {
				t.Fatalf("Convert(%q) ok = false, want true", tt.desc)
			}
			if got != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestConvert_NotDescriptor(t *testing.T) {
	for _, desc := range []string{
		"",
		"V",
		"I)V",
		"foo(int)",
		"Ljava/lang/String;",
		" (I)V",
	} {
		got, ok := Convert(desc)
		assert.False(t, ok, "Convert(%q) should report not-a-descriptor", desc)
		assert.Empty(t, got)
	}
}

func TestParse_NotDescriptor(t *testing.T) {
	params, err := Parse("V")
	require.ErrorIs(t, err, ErrNotDescriptor)
	assert.Nil(t, params)
}

func TestParse_Kinds(t *testing.T) {
	params, err := Parse("(I[ZLjava/lang/String;[Ljava/lang/String;Lcom/acme/Box;[Lcom/acme/Box;)V")
	require.NoError(t, err)
	require.Len(t, params, 6)

	want := []struct {
		kind Kind
		name string
		dims int
	}{
		{Primitive, "int", 0},
		{PrimitiveArray, "boolean", 1},
		{String, "String", 0},
		{StringArray, "String", 1},
		{Custom, "Box", 0},
		{CustomArray, "Box", 1},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, params[i].Kind, "param %d kind", i)
		assert.Equal(t, w.name, params[i].Name, "param %d name", i)
		assert.Equal(t, w.dims, params[i].Dims, "param %d dims", i)
		assert.Equal(t, w.kind.IsArray(), w.dims > 0, "param %d IsArray", i)
	}
}

func TestParse_Positions(t *testing.T) {
	desc := "(ILjava/lang/String;[I)V"
	params, err := Parse(desc)
	require.NoError(t, err)
	require.Len(t, params, 3)

	assert.Equal(t, 1, params[0].Pos)
	assert.Equal(t, 2, params[1].Pos)
	assert.Equal(t, 20, params[2].Pos)

	assert.Equal(t, byte('I'), desc[params[0].Pos])
	assert.Equal(t, byte('L'), desc[params[1].Pos])
	assert.Equal(t, byte('['), desc[params[2].Pos])
}

func TestParse_ZeroArity(t *testing.T) {
	params, err := Parse("()V")
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "primitive", Primitive.String())
	assert.Equal(t, "custom-array", CustomArray.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestSimpleName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"java/lang/String", "String"},
		{"com/acme/Outer$Inner", "Inner"},
		{"a/b/c/d/e/f/Deep", "Deep"},
		{"Widget", "Widget"},
		{"Outer$Inner", "Inner"},
		{"com/acme/Outer$", "Outer$"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SimpleName(tt.path); got != tt.want {
			t.Errorf("SimpleName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestPrimitiveName(t *testing.T) {
	name, ok := PrimitiveName('J')
	assert.True(t, ok)
	assert.Equal(t, "long", name)

	_, ok = PrimitiveName('V')
	assert.False(t, ok, "void is not a parameter type")
}

// genParam returns a random descriptor fragment and its expected rendering.
func genParam(r *rand.Rand) (string, string) {
	codes := "BCDFIJSZ"
	packages := []string{"com/acme/", "org/test/govind/", "java/util/", ""}
	classes := []string{"SType", "Ilist", "Zebra", "Outer$Inner", "Box", "Double"}

	dims := 0
	if r.Intn(3) == 0 {
		dims = 1 + r.Intn(2)
	}
	prefix := strings.Repeat("[", dims)
	suffix := strings.Repeat("[]", dims)

	switch r.Intn(3) {
	case 0:
		c := codes[r.Intn(len(codes))]
		name, _ := PrimitiveName(c)
		return prefix + string(c), name + suffix
	case 1:
		return prefix + "Ljava/lang/String;", "String" + suffix
	default:
		pkg := packages[r.Intn(len(packages))]
		cls := classes[r.Intn(len(classes))]
		return prefix + "L" + pkg + cls + ";", SimpleName(cls) + suffix
	}
}

func TestConvert_PreservesOrderAndCount(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for iter := 0; iter < 500; iter++ {
		n := r.Intn(8)
		var desc strings.Builder
		want := make([]string, 0, n)
		desc.WriteByte('(')
		for i := 0; i < n; i++ {
			enc, name := genParam(r)
			desc.WriteString(enc)
			want = append(want, name)
		}
		desc.WriteString(")V")

		got, ok := Convert(desc.String())
		require.True(t, ok)
		assert.Equal(t, strings.Join(want, ", "), got, "descriptor %s", desc.String())

		params, err := Parse(desc.String())
		require.NoError(t, err)
		require.Len(t, params, n, "descriptor %s", desc.String())
		for i := 1; i < len(params); i++ {
			assert.Less(t, params[i-1].Pos, params[i].Pos, "positions must ascend in %s", desc.String())
		}
	}
}

func TestConvert_Concurrent(t *testing.T) {
	const desc = "([SLorg/test/govind/SType;ILjava/lang/String;)V"
	const want = "short[], SType, int, String"

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, _ := Convert(desc); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("concurrent Convert = %q, want %q", got, want)
	}
}

func FuzzConvert(f *testing.F) {
	f.Add("(ILjava/lang/String;[I)V")
	f.Add("([SLorg/test/govind/SType;)V")
	f.Add("()V")
	f.Add("(L;[[")
	f.Fuzz(func(t *testing.T, desc string) {
		got, ok := Convert(desc)
		if !ok && got != "" {
			t.Fatalf("absent result carried text %q", got)
		}
		if ok != strings.HasPrefix(desc, "(") {
			t.Fatalf("Convert(%q) ok = %v", desc, ok)
		}
	})
}

package parser

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/models"
)

func parseFixture(t *testing.T, name string) *SourceFile {
	t.Helper()
	p := NewParser(nil)
	file, err := p.ParseFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return file
}

func TestParseFile_PersonTemplate(t *testing.T) {
	file := parseFixture(t, "PersonTemplate.java")

	assert.Equal(t, "com.x", file.Package)
	assert.Equal(t, []Import{
		{Path: "java.math.BigDecimal"},
		{Path: "java.util", OnDemand: true},
		{Path: "java.util.List"},
		{Path: "java.util.Map"},
		{Path: "java.util.Objects.requireNonNull", Static: true},
		{Path: "au.id.villar.utils.beangen.Bean"},
		{Path: "au.id.villar.utils.beangen.Builder"},
	}, file.Imports)

	// the interface and the record are skipped
	require.Len(t, file.Classes, 1)
	class := file.Classes[0]

	assert.Equal(t, "PersonTemplate", class.Name)
	assert.Equal(t, "com.x.PersonTemplate", class.QualifiedName)
	assert.Equal(t, 15, class.Location.Line)
	assert.Equal(t, 1, class.Location.Column)
	assert.Equal(t, Modifiers{"public", "abstract"}, class.Modifiers)
	require.Len(t, class.Annotations, 1)
	assert.Equal(t, "Bean", class.Annotations[0].SimpleName())
	assert.Equal(t, []string{"T"}, class.TypeParameters)
	assert.Equal(t, "BaseTemplate", class.Superclass)
	assert.False(t, class.IsNested())

	t.Run("fields", func(t *testing.T) {
		type field struct{ name, typ string }
		var got []field
		for _, f := range class.Fields {
			got = append(got, field{f.Name, f.Type})
		}
		assert.Equal(t, []field{
			{"serialVersionUID", "long"},
			{"id", "int"},
			{"name", "java.lang.String"},
			{"nickname", "java.lang.String"},
			{"scores", "java.util.List<java.util.Map<java.lang.String,? extends java.lang.Number>>"},
			{"balance", "java.math.BigDecimal"},
			{"tag", "T"},
			{"codes", "int[]"},
			{"matrix", "int[][]"},
			{"address", "com.x.PersonTemplate.Address"},
		}, got)

		assert.True(t, class.Fields[0].IsStatic())
		assert.True(t, class.Fields[0].IsFinal())
		assert.True(t, class.Fields[1].IsFinal())
		assert.False(t, class.Fields[1].IsStatic())
		assert.Equal(t, class.Fields[2].Modifiers, class.Fields[3].Modifiers)
	})

	t.Run("constructors", func(t *testing.T) {
		require.Len(t, class.Constructors, 3)

		builder := class.Constructors[0]
		assert.Equal(t, Modifiers{"protected"}, builder.Modifiers)
		assert.True(t, builder.HasAnnotation("Builder"))
		assert.Equal(t, []models.VariableSpec{
			{Name: "id", Type: "int"},
			{Name: "name", Type: "java.lang.String"},
		}, builder.Params)

		varargs := class.Constructors[1]
		assert.Empty(t, varargs.Modifiers)
		assert.False(t, varargs.HasAnnotation("Builder"))
		assert.Equal(t, []models.VariableSpec{
			{Name: "id", Type: "int"},
			{Name: "aliases", Type: "java.lang.String..."},
		}, varargs.Params)

		assert.Equal(t, Modifiers{"private"}, class.Constructors[2].Modifiers)
		assert.Empty(t, class.Constructors[2].Params)
	})

	t.Run("methods", func(t *testing.T) {
		var names []string
		for _, m := range class.Methods {
			names = append(names, m.Name)
		}
		assert.Equal(t, []string{"getId", "convert", "setName", "setBalance", "toString"}, names)

		assert.Equal(t, []models.VariableSpec{
			{Name: "fn", Type: "java.util.function.Function<? super T,R>"},
		}, class.Methods[1].Params)
		assert.Equal(t, []models.VariableSpec{{Name: "value", Type: "double"}}, class.Methods[3].Params)
		assert.True(t, class.Methods[4].HasAnnotation("Override"))
	})

	t.Run("nested", func(t *testing.T) {
		require.Len(t, class.Nested, 1)
		address := class.Nested[0]
		assert.Equal(t, "com.x.PersonTemplate.Address", address.QualifiedName)
		assert.Equal(t, "com.x.PersonTemplate", address.Enclosing)
		assert.True(t, address.IsNested())
		require.Len(t, address.Fields, 1)
		assert.Equal(t, "java.lang.String", address.Fields[0].Type)

		all := file.AllClasses()
		require.Len(t, all, 2)
		assert.Same(t, address, all[1])
	})
}

func TestParseSource_TypeRendering(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "primitive",
			src:      "class A { boolean x; }",
			expected: "boolean",
		},
		{
			name:     "java.lang without import",
			src:      "class A { Integer x; }",
			expected: "java.lang.Integer",
		},
		{
			name:     "single-type import wins over java.lang",
			src:      "import com.y.String; class A { String x; }",
			expected: "com.y.String",
		},
		{
			name:     "on-demand import is not resolved",
			src:      "import java.util.*; class A { Set<String> x; }",
			expected: "Set<java.lang.String>",
		},
		{
			name:     "outer class through import",
			src:      "import java.util.Map; class A<K, V> { Map.Entry<K, V> x; }",
			expected: "java.util.Map.Entry<K,V>",
		},
		{
			name:     "fully qualified name is echoed",
			src:      "class A { java.time.Instant x; }",
			expected: "java.time.Instant",
		},
		{
			name:     "unbounded wildcard",
			src:      "import java.util.List; class A { List<?> x; }",
			expected: "java.util.List<?>",
		},
		{
			name:     "lower bounded wildcard",
			src:      "import java.util.List; class A { List<? super Integer> x; }",
			expected: "java.util.List<? super java.lang.Integer>",
		},
		{
			name:     "local class in default package",
			src:      "class A { B x; } class B {}",
			expected: "B",
		},
		{
			name:     "local class in package",
			src:      "package p; class A { B x; } class B {}",
			expected: "p.B",
		},
		{
			name:     "type-use annotation is dropped",
			src:      "class A { @Nullable String x; }",
			expected: "java.lang.String",
		},
		{
			name:     "array of generics",
			src:      "import java.util.List; class A { List<String>[] x; }",
			expected: "java.util.List<java.lang.String>[]",
		},
	}

	p := NewParser(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := p.ParseSource("A.java", tt.src)
			require.NoError(t, err)
			require.NotEmpty(t, file.Classes)
			require.Len(t, file.Classes[0].Fields, 1)
			assert.Equal(t, tt.expected, file.Classes[0].Fields[0].Type)
		})
	}
}

func TestParseSource_DefaultPackage(t *testing.T) {
	file, err := NewParser(nil).ParseSource("Plain.java", "@Bean class PlainTemplate { int a; }")
	require.NoError(t, err)

	assert.Equal(t, "", file.Package)
	require.Len(t, file.Classes, 1)
	assert.Equal(t, "PlainTemplate", file.Classes[0].QualifiedName)
}

func TestParseSource_MethodDeclaredBeforeField(t *testing.T) {
	src := `class A {
	public String getName() { return name; }
	private String name;
	void set(int a, int b) {}
}`
	file, err := NewParser(nil).ParseSource("A.java", src)
	require.NoError(t, err)

	class := file.Classes[0]
	require.Len(t, class.Methods, 2)
	require.Len(t, class.Fields, 1)
	assert.Equal(t, "name", class.Fields[0].Name)
	assert.Equal(t, 3, class.Fields[0].Location.Line)
	assert.Len(t, class.Methods[1].Params, 2)
}

func TestParseSource_FieldInitializers(t *testing.T) {
	src := `import java.util.*;

class AccountTemplate {
	private Map<String, Integer> totals = new HashMap<String, Integer>();
	private List<String> names = new ArrayList<>(), aliases = Collections.<String>emptyList();
	private boolean small = LIMIT < 10, big = LIMIT > 10;
	private int clamp = LIMIT < 10 ? LIMIT : 10;
	private Map<String, List<Integer>> nested = new TreeMap<String, List<Integer>>(Map.of("a", List.of(1, 2)));
}`
	file, err := NewParser(nil).ParseSource("AccountTemplate.java", src)
	require.NoError(t, err)

	var names []string
	for _, f := range file.Classes[0].Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"totals", "names", "aliases", "small", "big", "clamp", "nested"}, names)
	assert.Equal(t, "Map<java.lang.String,java.lang.Integer>", file.Classes[0].Fields[0].Type)
}

func TestParseFile_SyntaxError(t *testing.T) {
	p := NewParser(nil)
	path := filepath.Join("testdata", "Broken.java")

	_, err := p.ParseFile(path)
	require.Error(t, err)

	var syntaxErr *errors.SyntaxError
	require.True(t, stderrors.As(err, &syntaxErr))
	assert.Equal(t, errors.SyntaxErrorCode, syntaxErr.ErrorCode())
	assert.Equal(t, path, syntaxErr.Location().File)
	assert.Greater(t, syntaxErr.Location().Line, 0)

	// failures are not cached
	assert.Equal(t, 0, p.CacheStats().Size)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := NewParser(nil).ParseFile(filepath.Join("testdata", "Missing.java"))
	require.Error(t, err)

	var beanErr errors.BeanError
	require.True(t, stderrors.As(err, &beanErr))
	assert.Equal(t, errors.FileSystemErrorCode, beanErr.ErrorCode())
}

func TestParseFile_Cache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CTemplate.java")
	require.NoError(t, os.WriteFile(path, []byte("class CTemplate { int a; }"), 0644))

	p := NewParser(nil)

	first, err := p.ParseFile(path)
	require.NoError(t, err)
	second, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int64(1), p.CacheStats().Hits)

	require.NoError(t, os.WriteFile(path, []byte("class CTemplate { int a; long b; }"), 0644))

	third, err := p.ParseFile(path)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Len(t, third.Classes[0].Fields, 2)

	p.Invalidate(path)
	assert.Equal(t, 0, p.CacheStats().Size)
}

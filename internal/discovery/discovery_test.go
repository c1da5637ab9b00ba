package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/beangen/internal/errors"
	"github.com/toyz/beangen/internal/models"
	"github.com/toyz/beangen/internal/parser"
)

func discover(t *testing.T, src string) Result {
	t.Helper()
	file, err := parser.NewParser(nil).ParseSource("Test.java", src)
	require.NoError(t, err)
	return NewDiscoverer(nil).Discover(file)
}

func singleTarget(t *testing.T, src string) Target {
	t.Helper()
	result := discover(t, src)
	require.Empty(t, result.Errors)
	require.Len(t, result.Targets, 1)
	return result.Targets[0]
}

func TestDiscover_PersonScenario(t *testing.T) {
	target := singleTarget(t, `package com.x;

@Bean
public class PersonTemplate {
	private int id;

	@Builder
	public PersonTemplate(int id) {
		this.id = id;
	}
}`)

	expected := models.NewTargetBuilder("com.x.Person", "com.x.PersonTemplate").
		WithBuilderConstructor(models.AccessPublic, models.Var("id", "int")).
		WithProperty("id", "int").
		Build()

	assert.Equal(t, expected, target.GenerationTarget)
	assert.Equal(t, "com.x.PersonTemplate", target.Class)
	assert.Equal(t, 3, target.Location.Line)
}

func TestDiscover_TargetName(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"suffix stripped", "package com.x; @Bean class PersonTemplate {}", "com.x.Person"},
		{"simple typeName joins package", `package com.x; @Bean(typeName = "Human") class PersonTemplate {}`, "com.x.Human"},
		{"qualified typeName as is", `package com.x; @Bean(typeName = "com.y.Human") class Person {}`, "com.y.Human"},
		{"default package", "@Bean class PersonTemplate {}", "Person"},
		{"default package typeName", `@Bean(typeName = "Human") class Whatever {}`, "Human"},
		{"qualified marker name", "package com.x; @au.id.villar.utils.beangen.Bean class PersonTemplate {}", "com.x.Person"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, singleTarget(t, tt.src).QualifiedName)
		})
	}
}

func TestDiscover_TargetNameFailureIsPerClass(t *testing.T) {
	result := discover(t, `package com.x;
@Bean class Person {}
@Bean class Template {}
@Bean class AddressTemplate {}`)

	require.Len(t, result.Errors, 2)
	for _, err := range result.Errors {
		assert.Equal(t, errors.ConfigurationErrorCode, err.ErrorCode())
	}
	assert.Contains(t, result.Errors[0].Error(), "com.x.Person")
	assert.Equal(t, 2, result.Errors[0].Location().Line)

	require.Len(t, result.Targets, 1)
	assert.Equal(t, "com.x.Address", result.Targets[0].QualifiedName)
	assert.True(t, result.HasErrors())
}

func TestDiscover_EntityStyle(t *testing.T) {
	target := singleTarget(t, `package com.x;
@BeanTemplate(name = "person")
public class PersonTemplate {
	private String name;
}`)

	assert.True(t, target.IsEntityStyle)
	assert.Equal(t, "person", target.EntityDisplayName)
	assert.True(t, target.EmitSetters)
}

func TestDiscover_Setters(t *testing.T) {
	assert.True(t, singleTarget(t, "@Bean class ATemplate { int a; }").EmitSetters)
	assert.False(t, singleTarget(t, "@Bean(setters = false) class ATemplate { int a; }").EmitSetters)
}

func TestDiscover_Constructors(t *testing.T) {
	target := singleTarget(t, `package com.x;
@Bean
public class PersonTemplate {
	protected PersonTemplate(int id) {}
	public PersonTemplate(String name) {}
	PersonTemplate(int id, String name) {}
	private PersonTemplate() {}
}`)

	assert.Equal(t, []models.ConstructorSpec{
		{AccessModifier: models.AccessProtected, Parameters: []models.VariableSpec{models.Var("id", "int")}},
		{AccessModifier: models.AccessPublic, Parameters: []models.VariableSpec{models.Var("name", "java.lang.String")}},
		{AccessModifier: models.AccessPackagePrivate, Parameters: []models.VariableSpec{
			models.Var("id", "int"), models.Var("name", "java.lang.String"),
		}},
	}, target.Constructors)
}

func TestDiscover_ImplicitConstructor(t *testing.T) {
	public := singleTarget(t, "@Bean public class ATemplate {}")
	assert.Equal(t, []models.ConstructorSpec{{AccessModifier: models.AccessPublic}}, public.Constructors)

	pkg := singleTarget(t, "@Bean class ATemplate {}")
	require.Len(t, pkg.Constructors, 1)
	assert.Equal(t, models.AccessPackagePrivate, pkg.Constructors[0].AccessModifier)
}

func TestDiscover_NoArgsConstructor(t *testing.T) {
	added := singleTarget(t, `@Bean(noArgsConstructor = true)
class ATemplate {
	ATemplate(int a) {}
}`)
	require.Len(t, added.Constructors, 2)
	assert.Equal(t, models.DefaultConstructor(), added.Constructors[1])

	// a private no-arg constructor does not count as surviving
	private := singleTarget(t, `@Bean(noArgsConstructor = true)
class ATemplate {
	private ATemplate() {}
	ATemplate(int a) {}
}`)
	require.Len(t, private.Constructors, 2)
	assert.True(t, private.Constructors[1].IsNoArgs())

	existing := singleTarget(t, `@Bean(noArgsConstructor = true)
class ATemplate {
	protected ATemplate() {}
}`)
	require.Len(t, existing.Constructors, 1)
	assert.Equal(t, models.AccessProtected, existing.Constructors[0].AccessModifier)
}

func TestDiscover_BuilderSelection(t *testing.T) {
	result := discover(t, `@Bean
class ATemplate {
	@Builder ATemplate(int a) {}
	@Builder ATemplate(int a, int b) {}
	@Builder private ATemplate(String s) {}
}`)

	require.Empty(t, result.Errors)
	require.Len(t, result.Targets, 1)
	ctors := result.Targets[0].Constructors
	require.Len(t, ctors, 2)
	assert.True(t, ctors[0].UsedByBuilder)
	assert.False(t, ctors[1].UsedByBuilder)

	builder, ok := result.Targets[0].BuilderConstructor()
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, builder.ParameterNames())

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0].Message, "more than one @Builder")
	assert.Equal(t, 4, result.Warnings[0].Location.Line)
	assert.Contains(t, result.Warnings[1].String(), "private constructor")
}

func TestDiscover_ForeignMarkersIgnored(t *testing.T) {
	target := singleTarget(t, `package com.x;

import lombok.Builder;
import au.id.villar.utils.beangen.Bean;

@Bean
public class PersonTemplate {
	private int id;

	@Builder
	public PersonTemplate(int id) {
		this.id = id;
	}

	@lombok.Builder
	protected PersonTemplate(long id) {
		this.id = (int) id;
	}
}`)

	require.Len(t, target.Constructors, 2)
	for _, c := range target.Constructors {
		assert.False(t, c.UsedByBuilder)
	}
	_, ok := target.BuilderConstructor()
	assert.False(t, ok)
}

func TestDiscover_ForeignClassMarker(t *testing.T) {
	result := discover(t, `package com.x;
import com.acme.Bean;
@Bean class PersonTemplate {}
@com.acme.BeanTemplate class AddressTemplate {}`)

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Targets)
}

func TestDiscover_Properties(t *testing.T) {
	target := singleTarget(t, `package com.x;
import java.util.List;
@Bean
class PersonTemplate {
	private static int counter;
	private final int id = 1;
	private String name;
	private List<String> tags;
	private long age;
	private boolean active;

	public String getId() { return ""; }
	public void setName(String name) {}
	public void setTags(List<Object> tags) {}
	public long getAge(int unit) { return 0; }
	public void setAge(int age) {}
	public boolean getActive() { return active; }
	public void setActive(boolean active) {}
	public String get() { return ""; }
}`)

	props := target.Properties.All()
	require.Len(t, props, 5)
	assert.Equal(t, []string{"id", "name", "tags", "age", "active"}, target.Properties.Names())

	id, _ := target.Properties.Get("id")
	assert.True(t, id.IsFinal)
	assert.False(t, id.NeedsGetter, "getter matches by name regardless of return type")

	name, _ := target.Properties.Get("name")
	assert.True(t, name.NeedsGetter)
	assert.False(t, name.NeedsSetter)

	tags, _ := target.Properties.Get("tags")
	assert.Equal(t, "java.util.List<java.lang.String>", tags.Type)
	assert.True(t, tags.NeedsSetter, "setter parameter type must match exactly")

	age, _ := target.Properties.Get("age")
	assert.True(t, age.NeedsGetter, "getters take no parameters")
	assert.True(t, age.NeedsSetter, "setter parameter type differs")

	active, _ := target.Properties.Get("active")
	assert.False(t, active.NeedsGetter)
	assert.False(t, active.NeedsSetter)
}

func TestDiscover_VarargsSetter(t *testing.T) {
	target := singleTarget(t, `@Bean
class TagsTemplate {
	private String[] tags;
	private int[] counts;

	public void setTags(String... tags) {}
	public void setCounts(int[]... counts) {}
}`)

	tags, _ := target.Properties.Get("tags")
	assert.False(t, tags.NeedsSetter, "a varargs setter takes the array type")

	counts, _ := target.Properties.Get("counts")
	assert.True(t, counts.NeedsSetter, "int[]... is int[][]")
}

func TestDiscover_TypeParameters(t *testing.T) {
	target := singleTarget(t, `@Bean class PairTemplate<K extends Comparable<K>, V> { K key; V value; }`)

	assert.Equal(t, []string{"K", "V"}, target.TypeParameters)
	key, _ := target.Properties.Get("key")
	assert.Equal(t, "K", key.Type)
}

func TestDiscover_Rejections(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.ErrorCode
		text string
	}{
		{
			name: "inner class",
			src:  "class Outer { @Bean static class InnerTemplate {} }",
			code: errors.UnsupportedErrorCode,
			text: "inner classes not supported",
		},
		{
			name: "both markers",
			src:  "@Bean @BeanTemplate class ATemplate {}",
			code: errors.ConfigurationErrorCode,
			text: "both @Bean and @BeanTemplate",
		},
		{
			name: "unknown attribute",
			src:  `@Bean(name = "x") class ATemplate {}`,
			code: errors.SchemaErrorCode,
			text: "unknown attribute 'name'",
		},
		{
			name: "wrong attribute type",
			src:  `@Bean(setters = "yes") class ATemplate {}`,
			code: errors.AnnotationErrorCode,
			text: "setters",
		},
		{
			name: "attribute on builder",
			src:  "@Bean class ATemplate { @Builder(x = 1) ATemplate() {} }",
			code: errors.SchemaErrorCode,
			text: "unknown attribute 'x'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := discover(t, tt.src)
			assert.Empty(t, result.Targets)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.code, result.Errors[0].ErrorCode())
			assert.Contains(t, result.Errors[0].Error(), tt.text)
		})
	}
}

func TestDiscover_UnmarkedAndClassBuilder(t *testing.T) {
	result := discover(t, `
class Plain {}
@Builder @Bean class ATemplate {}
@Deprecated class Other {}`)

	require.Len(t, result.Targets, 1)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "has no effect")
}

func TestResultMerge(t *testing.T) {
	var total Result
	total.Merge(discover(t, "@Bean class ATemplate {}"))
	total.Merge(discover(t, "@Bean class B {}"))

	assert.Len(t, total.Targets, 1)
	assert.Len(t, total.Errors, 1)
}

func TestAccessorProperty(t *testing.T) {
	tests := []struct {
		method, prefix, expected string
		ok                       bool
	}{
		{"getName", "get", "name", true},
		{"getURL", "get", "uRL", true},
		{"setX", "set", "x", true},
		{"get", "get", "", false},
		{"isActive", "get", "", false},
		{"getÉtat", "get", "état", true},
	}

	for _, tt := range tests {
		got, ok := accessorProperty(tt.method, tt.prefix)
		assert.Equal(t, tt.ok, ok, tt.method)
		assert.Equal(t, tt.expected, got, tt.method)
	}
}

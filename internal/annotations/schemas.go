package annotations

import (
	"fmt"

	"github.com/toyz/beangen/internal/utils"
)

// Built-in annotation schemas

// BeanAnnotationSchema defines the schema for @Bean
var BeanAnnotationSchema = AnnotationSchema{
	Type:        BeanAnnotation,
	Description: "Generates a plain bean class extending the annotated class",
	Parameters: map[string]ParameterSpec{
		"typeName":          TypeNameParameterSpec(),
		"noArgsConstructor": NoArgsConstructorParameterSpec(),
		"setters": {
			Type:         BoolType,
			DefaultValue: true,
			Description:  "Whether setters are generated for non-final fields",
		},
	},
	Examples: []string{
		"@Bean",
		"@Bean(typeName = \"Person\")",
		"@Bean(setters = false, noArgsConstructor = true)",
	},
}

// BeanTemplateAnnotationSchema defines the schema for @BeanTemplate
var BeanTemplateAnnotationSchema = AnnotationSchema{
	Type:        BeanTemplateAnnotation,
	Description: "Generates an entity bean class extending the annotated class",
	Parameters: map[string]ParameterSpec{
		"name": {
			Type:         StringType,
			DefaultValue: "",
			Description:  "Entity name written as @Entity(name=...)",
		},
		"typeName":          TypeNameParameterSpec(),
		"noArgsConstructor": NoArgsConstructorParameterSpec(),
	},
	Examples: []string{
		"@BeanTemplate",
		"@BeanTemplate(name = \"person\")",
		"@BeanTemplate(typeName = \"com.x.entities.Person\", noArgsConstructor = true)",
	},
}

// BuilderAnnotationSchema defines the schema for @Builder
var BuilderAnnotationSchema = AnnotationSchema{
	Type:        BuilderAnnotation,
	Description: "Selects the constructor backing the generated builder",
	Parameters:  map[string]ParameterSpec{},
	Examples:    []string{"@Builder"},
}

// TypeNameParameterSpec is shared by @Bean and @BeanTemplate
func TypeNameParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         StringType,
		DefaultValue: "",
		Description:  "Generated class name; simple names are placed in the annotated class's package",
		Validator:    ValidateTypeName,
	}
}

// NoArgsConstructorParameterSpec is shared by @Bean and @BeanTemplate
func NoArgsConstructorParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:         BoolType,
		DefaultValue: false,
		Description:  "Adds a public no-argument constructor when none exists",
	}
}

// ValidateTypeName rejects names that cannot be a Java class name
func ValidateTypeName(v interface{}) error {
	name, _ := v.(string)
	if name == "" {
		return nil
	}
	if err := utils.IsValidJavaName("typeName")(name); err != nil {
		return fmt.Errorf("'%s' is not a valid class name", name)
	}
	return nil
}

// RegisterBuiltinSchemas registers the three marker schemas
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return fmt.Errorf("failed to register %s schema: %w", schema.Type, err)
		}
	}
	return nil
}

// GetBuiltinSchemas returns all built-in schemas
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		BeanAnnotationSchema,
		BeanTemplateAnnotationSchema,
		BuilderAnnotationSchema,
	}
}

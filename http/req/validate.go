package req

import (
	"errors"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"

	"github.com/xy-planning-network/writium"
)

// enumTag names the rule checking a field holds valid writium.Enumerable values.
const enumTag = "enum"

type validator struct {
	valid *v10.Validate
}

func newValidator() validator {
	v := v10.New()
	v.RegisterValidation(enumTag, isValidEnum)
	v.RegisterTagNameFunc(fieldName)

	return validator{v}
}

// fieldName reports a field by its json name, falling back to its schema name,
// so ValidationErrors read the way the payload was written.
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "schema"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validate checks structPtr against its "validate" struct tags,
// returning every failed rule as ValidationErrors.
func (v validator) validate(structPtr any) error {
	var fails v10.ValidationErrors
	if err := v.valid.Struct(structPtr); !errors.As(err, &fails) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fails))
	for _, fail := range fails {
		errs = append(errs, ValidationError{
			Field: relativeField(fail.Namespace()),
			Got:   fail.Value(),
			Rule:  describeRule(fail),
		})
	}

	return errs
}

// relativeField drops the name of the top-level struct from ns.
func relativeField(ns string) string {
	if _, field, ok := strings.Cut(ns, "."); ok {
		return field
	}

	return ns
}

// describeRule formats a failed rule as "tag[=param]; type".
func describeRule(fail v10.FieldError) string {
	var b strings.Builder
	b.WriteString(fail.Tag())
	if p := fail.Param(); p != "" {
		b.WriteString("=" + p)
	}
	b.WriteString("; " + fail.Type().String())

	return b.String()
}

// isValidEnum passes a writium.Enumerable or a non-empty slice of them
// when every value is valid.
func isValidEnum(fl v10.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return validEnum(field)
	}

	if field.Len() == 0 {
		return false
	}

	for i := 0; i < field.Len(); i++ {
		if !validEnum(field.Index(i)) {
			return false
		}
	}

	return true
}

func validEnum(v reflect.Value) bool {
	enum, ok := v.Interface().(writium.Enumerable)
	return ok && enum.Valid() == nil
}

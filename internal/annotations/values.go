package annotations

import (
	"fmt"
	"strconv"
	"strings"
)

// Value converts an element value to a Go value: string, bool, int, float64,
// []interface{} for arrays, *Annotation for nested annotations
func (v *ElementValue) Value() (interface{}, error) {
	switch {
	case v.Annotation != nil:
		return v.Annotation, nil
	case v.Array != nil:
		values := make([]interface{}, 0, len(v.Array.Values))
		for _, item := range v.Array.Values {
			converted, err := item.Value()
			if err != nil {
				return nil, err
			}
			values = append(values, converted)
		}
		return values, nil
	case v.Expr != nil:
		return v.Expr.Value()
	default:
		return nil, fmt.Errorf("empty element value")
	}
}

// Value folds the expression; more than one operand means string concatenation
func (e *ConstExpr) Value() (interface{}, error) {
	if len(e.Operands) == 1 {
		return e.Operands[0].Value()
	}

	var sb strings.Builder
	for _, op := range e.Operands {
		v, err := op.Value()
		if err != nil {
			return nil, err
		}
		sb.WriteString(fmt.Sprint(v))
	}
	return sb.String(), nil
}

// Value converts one operand
func (o *Operand) Value() (interface{}, error) {
	switch {
	case o.String != nil:
		return unquoteJava(*o.String)
	case o.Char != nil:
		return unquoteJava(*o.Char)
	case o.Bool != nil:
		return *o.Bool == "true", nil
	case o.Number != nil:
		return parseNumber(*o.Number, o.Neg)
	case o.Group != nil:
		return o.Group.Value()
	case len(o.Name) > 0:
		// enum constants and class literals are kept as written
		return strings.Join(o.Name, "."), nil
	default:
		return nil, fmt.Errorf("empty operand")
	}
}

func parseNumber(raw string, neg bool) (interface{}, error) {
	text := strings.ReplaceAll(raw, "_", "")
	if neg {
		text = "-" + text
	}

	intText := strings.TrimRight(text, "lL")
	if i, err := strconv.ParseInt(intText, 0, 64); err == nil {
		return int(i), nil
	}

	floatText := strings.TrimRight(text, "fFdD")
	if f, err := strconv.ParseFloat(floatText, 64); err == nil {
		return f, nil
	}

	return nil, fmt.Errorf("invalid numeric literal %q", raw)
}

// unquoteJava strips the quotes of a string or char literal and resolves escapes
func unquoteJava(lit string) (string, error) {
	if len(lit) < 2 {
		return "", fmt.Errorf("invalid literal %s", lit)
	}
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}

	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 's':
			sb.WriteByte(' ')
		case 'u':
			if i+4 < len(body) {
				if r, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					sb.WriteRune(rune(r))
					i += 4
					continue
				}
			}
			return "", fmt.Errorf("invalid unicode escape in %s", lit)
		default:
			// \" \' \\ and octal-free cases
			sb.WriteByte(body[i])
		}
	}
	return sb.String(), nil
}

// ConvertToString converts any value to a string
func ConvertToString(value interface{}) (string, error) {
	if strValue, ok := value.(string); ok {
		return strValue, nil
	}
	return "", fmt.Errorf("cannot convert %T to string", value)
}

// ConvertToBool accepts only boolean literals
func ConvertToBool(value interface{}) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert %T to boolean", value)
}

// ConvertToInt accepts integer literals
func ConvertToInt(value interface{}) (int, error) {
	if i, ok := value.(int); ok {
		return i, nil
	}
	return 0, fmt.Errorf("cannot convert %T to int", value)
}

// ConvertToStringSlice accepts a single string or an array of strings
func ConvertToStringSlice(value interface{}) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("array element %d is %T, not string", i, item)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to string[]", value)
	}
}

package form

import (
	"fmt"
	"sort"
)

type constructor func(name string, args []any) (Element, error)

// constructors is the closed set of element variants the factory can build.
var constructors = map[Type]constructor{
	TypeText: func(name string, args []any) (Element, error) {
		label, err := labelArg(TypeText, args, 1)
		if err != nil {
			return nil, err
		}
		return NewText(name, label), nil
	},
	TypeInteger: func(name string, args []any) (Element, error) {
		label, err := labelArg(TypeInteger, args, 1)
		if err != nil {
			return nil, err
		}
		return NewInteger(name, label), nil
	},
	TypePassword: func(name string, args []any) (Element, error) {
		label, err := labelArg(TypePassword, args, 1)
		if err != nil {
			return nil, err
		}
		return NewPassword(name, label), nil
	},
	TypeHidden: func(name string, args []any) (Element, error) {
		label, err := labelArg(TypeHidden, args, 1)
		if err != nil {
			return nil, err
		}
		h := NewHidden(name)
		h.SetLabel(label)
		return h, nil
	},
	TypeDropdown: func(name string, args []any) (Element, error) {
		label, err := labelArg(TypeDropdown, args, 2)
		if err != nil {
			return nil, err
		}
		var options Options
		if len(args) > 1 {
			options, err = optionsArg(args[1])
			if err != nil {
				return nil, err
			}
		}
		return NewDropdown(name, label, options), nil
	},
}

// NewElement constructs an element of type t without registering it anywhere.
func NewElement(t Type, name string, args ...any) (Element, error) {
	resolved, err := ParseType(string(t))
	if err != nil {
		return nil, err
	}
	return constructors[resolved](name, args)
}

func labelArg(t Type, args []any, max int) (string, error) {
	if len(args) > max {
		return "", fmt.Errorf("%w: %s accepts at most %d arguments, got %d", ErrInvalidArgument, t, max, len(args))
	}
	if len(args) == 0 || args[0] == nil {
		return "", nil
	}
	label, ok := args[0].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s label must be a string, got %T", ErrInvalidArgument, t, args[0])
	}
	return label, nil
}

func optionsArg(arg any) (Options, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case Options:
		return v, nil
	case []Option:
		return Options(v), nil
	case []string:
		return OptionsFromList(v...), nil
	case map[string]string:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := make(Options, 0, len(keys))
		for _, key := range keys {
			out = append(out, Option{Key: key, Label: v[key]})
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: dropdown options must be Options, []string or map[string]string, got %T", ErrInvalidArgument, arg)
}

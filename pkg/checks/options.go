package checks

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/cast"
)

// ErrInvalidOption is returned when a check option has the wrong type or value.
var ErrInvalidOption = errors.New("invalid check option")

func intOption(options map[string]any, key string, target *int) error {
	raw, ok := options[key]
	if !ok {
		return nil
	}

	value, err := cast.ToIntE(raw)
	if err != nil || value < 0 {
		return fmt.Errorf("%w %s: %v", ErrInvalidOption, key, raw)
	}

	*target = value

	return nil
}

func boolOption(options map[string]any, key string, target *bool) error {
	raw, ok := options[key]
	if !ok {
		return nil
	}

	value, err := cast.ToBoolE(raw)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidOption, key, raw)
	}

	*target = value

	return nil
}

func stringOption(options map[string]any, key string, target *string) error {
	raw, ok := options[key]
	if !ok {
		return nil
	}

	value, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Errorf("%w %s: %v", ErrInvalidOption, key, raw)
	}

	*target = value

	return nil
}

func regexpOption(options map[string]any, key string, target **regexp.Regexp) error {
	var pattern string

	err := stringOption(options, key, &pattern)
	if err != nil || pattern == "" {
		return err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrInvalidOption, key, err)
	}

	*target = re

	return nil
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanraalte/nstimes/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the final configuration (after flags were applied).
func Validate(cfg domain.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &domain.OpError{Op: "config.validate", Kind: domain.KindInvalidConfig, Err: err}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), tagWithParam(fe), fe.Value()))
	}
	return &domain.OpError{
		Op:   "config.validate",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%s: %w", strings.Join(msgs, "; "), domain.ErrInvalidConfig),
	}
}

func tagWithParam(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

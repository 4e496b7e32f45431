package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

var ErrInvalidProxy = errors.New("invalid proxy")

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	if err := validate.RegisterValidation("charset", func(fl validator.FieldLevel) bool {
		_, err := htmlindex.Get(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
}

// FieldError describes one invalid Config field.
type FieldError struct {
	Field string
	Err   string
}

// FieldErrors is returned by Validate when one or more fields are invalid.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, f := range fe {
		msgs[i] = f.Field + ": " + f.Err
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validate checks c against its declared tags and the proxy rules.
func Validate(c *Config) error {
	var fields FieldErrors

	if err := validate.Struct(c); err != nil {
		var verrors validator.ValidationErrors
		if !errors.As(err, &verrors) {
			return err
		}

		for _, verror := range verrors {
			fields = append(fields, FieldError{
				Field: verror.Namespace(),
				Err:   customErrForTag(verror.Tag(), verror),
			})
		}
	}

	if err := validateProxy(c); err != nil {
		fields = append(fields, FieldError{Field: "Config.Proxy", Err: err.Error()})
	}

	if len(fields) > 0 {
		return fields
	}

	return nil
}

func validateProxy(c *Config) error {
	if c.Proxy == nil {
		return nil
	}

	switch c.Proxy.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidProxy, c.Proxy.Scheme)
	}

	if c.Proxy.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidProxy)
	}

	return nil
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "charset":
		return fmt.Sprintf("unknown charset %q", verror.Value())
	default:
		return verror.Translate(translator)
	}
}

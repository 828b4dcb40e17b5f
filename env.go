package di

import (
	"fmt"
	"github.com/goccy/go-reflect"
	"github.com/joho/godotenv"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadEnv parses dotenv content from r into the builder's environment
// overlay. Overlay values shadow the process environment when env-bound
// parameters are materialized during Build.
func (b *Builder) LoadEnv(r io.Reader) error {
	env, err := godotenv.Parse(r)

	if err != nil {
		return err
	}

	b.storeEnv(env)
	return nil
}

// LoadEnvFiles reads dotenv files into the overlay, ".env" when called
// without arguments.
func (b *Builder) LoadEnvFiles(paths ...string) error {
	env, err := godotenv.Read(paths...)

	if err != nil {
		return err
	}

	b.storeEnv(env)
	return nil
}

func (b *Builder) storeEnv(env map[string]string) {
	if b.env == nil {
		b.env = make(map[string]string, len(env))
	}

	for key, value := range env {
		b.env[key] = value
	}
}

func (b *Builder) lookupEnv(key string) (string, bool) {
	if value, ok := b.env[key]; ok {
		return value, true
	}

	return os.LookupEnv(key)
}

// envBinding defers a named parameter to the environment until Build.
type envBinding struct {
	name string
	spec string
	typ  reflect.Type
}

// EnvParameter binds a named parameter of r to an environment variable,
// read and parsed into V when the component is built. A missing variable
// or an unparsable value fails the build as a parameter resolution error,
// before the factory runs. The variable name may carry a fallback after
// ":-", as in "PORT:-8080". Materialized values replace same-named
// parameters set directly on the registration.
//
// Supported types: string, bool, every int and uint width, floats and
// complex numbers.
func EnvParameter[V Interface](r *Registration, name, spec string) *Registration {
	r.envs = append(r.envs, envBinding{name: name, spec: spec, typ: typeOf[V]()})
	return r
}

func (r *Registration) applyEnv(lookup func(string) (string, bool)) error {
	for _, binding := range r.envs {
		value, err := binding.materialize(lookup)

		if err != nil {
			return err
		}

		r.params.SetNamed(binding.name, value)
	}

	return nil
}

func (e envBinding) materialize(lookup func(string) (string, bool)) (any, error) {
	key, fallback, hasFallback := strings.Cut(e.spec, ":-")
	raw, ok := lookup(key)

	if !ok {
		if !hasFallback {
			return nil, &ParameterError{Name: e.name, Err: fmt.Errorf("environment variable %s is not set", key)}
		}

		raw = fallback
	}

	value, err := parseScalar(e.typ, raw)

	if err != nil {
		return nil, &ParameterError{Name: e.name, Err: fmt.Errorf("environment variable %s: %w", key, err)}
	}

	return value, nil
}

func parseScalar(t reflect.Type, raw string) (any, error) {
	value := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		parsed, err := strconv.ParseBool(raw)

		if err != nil {
			return nil, err
		}

		value.SetBool(parsed)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(raw, 10, t.Bits())

		if err != nil {
			return nil, err
		}

		value.SetInt(parsed)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(raw, 10, t.Bits())

		if err != nil {
			return nil, err
		}

		value.SetUint(parsed)
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(raw, t.Bits())

		if err != nil {
			return nil, err
		}

		value.SetFloat(parsed)
	case reflect.Complex64, reflect.Complex128:
		parsed, err := strconv.ParseComplex(raw, t.Bits())

		if err != nil {
			return nil, err
		}

		value.SetComplex(parsed)
	default:
		return nil, fmt.Errorf("unsupported parameter type %s", t)
	}

	return value.Interface(), nil
}

package di

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"strings"
	"testing"
)

type IOutput interface {
	WriteLine(string)
}

type IDateWriter interface {
	WriteToday()
}

type ConsoleOutput struct {
	Lines []string
}

func (c *ConsoleOutput) WriteLine(line string) { c.Lines = append(c.Lines, line) }

type TodayWriter struct {
	Output IOutput
	Prefix string
	Today  string
}

func (w *TodayWriter) WriteToday() { w.Output.WriteLine(w.Prefix + w.Today) }

type serviceA struct {
	b *serviceB
	c *serviceC
}

type serviceB struct {
	d *serviceD
}

type serviceC struct {
	d *serviceD
}

type serviceD struct{}

func registerDiamond(b *Builder, counts map[string]int) {
	RegisterType[*serviceA](b, func(deps Dependencies, _ *Parameters) (*serviceA, error) {
		counts["a"]++
		return &serviceA{b: Dependency[*serviceB](deps, 0), c: Dependency[*serviceC](deps, 1)}, nil
	}, KeyOf[*serviceB](), KeyOf[*serviceC]())

	RegisterType[*serviceB](b, func(deps Dependencies, _ *Parameters) (*serviceB, error) {
		counts["b"]++
		return &serviceB{d: Dependency[*serviceD](deps, 0)}, nil
	}, KeyOf[*serviceD]())

	RegisterType[*serviceC](b, func(deps Dependencies, _ *Parameters) (*serviceC, error) {
		counts["c"]++
		return &serviceC{d: Dependency[*serviceD](deps, 0)}, nil
	}, KeyOf[*serviceD]())

	RegisterType[*serviceD](b, func(Dependencies, *Parameters) (*serviceD, error) {
		counts["d"]++
		return &serviceD{}, nil
	})
}

type ContainerTestSuite struct {
	suite.Suite
	builder *Builder
}

func (s *ContainerTestSuite) SetupTest() {
	s.builder = NewBuilder()
}

func (s *ContainerTestSuite) registerOutput() {
	RegisterType[IOutput](s.builder, func(Dependencies, *Parameters) (IOutput, error) {
		return &ConsoleOutput{}, nil
	})
}

func (s *ContainerTestSuite) registerDateWriter() {
	RegisterType[IDateWriter](s.builder, func(deps Dependencies, params *Parameters) (IDateWriter, error) {
		today, err := RequireNamed[string](params, "today")

		if err != nil {
			return nil, err
		}

		prefix, _ := GetNamed[string](params, "prefix")
		return &TodayWriter{Output: Dependency[IOutput](deps, 0), Prefix: prefix, Today: today}, nil
	}, KeyOf[IOutput]()).
		WithNamedParameter("prefix", "Today is ").
		WithNamedParameter("today", "Jan 26")
}

func (s *ContainerTestSuite) TestResolveAfterBuild() {
	s.registerOutput()
	s.registerDateWriter()

	container, err := s.builder.Build()
	s.Require().NoError(err)

	writer, err := Resolve[IDateWriter](container)
	s.Require().NoError(err)
	writer.WriteToday()

	output := MustResolve[IOutput](container).(*ConsoleOutput)
	s.Require().Len(output.Lines, 1)
	s.Equal("Today is Jan 26", output.Lines[0])

	writer.WriteToday()
	s.Len(output.Lines, 2)
}

func (s *ContainerTestSuite) TestSingletonSharing() {
	s.registerOutput()
	s.registerDateWriter()

	container, err := s.builder.Build()
	s.Require().NoError(err)

	first := MustResolve[IOutput](container)
	second := MustResolve[IOutput](container)
	s.Same(first, second)

	writer := MustResolve[IDateWriter](container).(*TodayWriter)
	s.Same(first, writer.Output)
}

func (s *ContainerTestSuite) TestConcurrentResolve() {
	s.registerOutput()
	s.registerDateWriter()

	container, err := s.builder.Build()
	s.Require().NoError(err)

	first := MustResolve[IOutput](container)
	results := make(chan IOutput, 16)

	for i := 0; i < cap(results); i++ {
		go func() { results <- MustResolve[IOutput](container) }()
	}

	for i := 0; i < cap(results); i++ {
		s.Same(first, <-results)
	}
}

func (s *ContainerTestSuite) TestFactoryInvokedOncePerBuild() {
	counts := make(map[string]int)
	registerDiamond(s.builder, counts)

	container, err := s.builder.Build()
	s.Require().NoError(err)

	for _, component := range []string{"a", "b", "c", "d"} {
		s.Equal(1, counts[component], component)
	}

	a := MustResolve[*serviceA](container)
	b := MustResolve[*serviceB](container)
	c := MustResolve[*serviceC](container)
	s.Same(b, a.b)
	s.Same(c, a.c)
	s.Same(b.d, c.d)
}

func (s *ContainerTestSuite) TestBuildOrderDeterministic() {
	expected := []TypeKey{
		KeyOf[*serviceD](),
		KeyOf[*serviceB](),
		KeyOf[*serviceC](),
		KeyOf[*serviceA](),
		KeyOf[IOutput](),
	}

	for run := 0; run < 3; run++ {
		builder := NewBuilder()
		registerDiamond(builder, make(map[string]int))
		RegisterType[IOutput](builder, func(Dependencies, *Parameters) (IOutput, error) {
			return &ConsoleOutput{}, nil
		})

		container, err := builder.Build()
		s.Require().NoError(err)
		s.Equal(expected, container.Keys())
	}
}

func (s *ContainerTestSuite) TestRegisterReplaces() {
	RegisterType[IOutput](s.builder, func(Dependencies, *Parameters) (IOutput, error) {
		s.Fail("replaced factory must not run")
		return nil, nil
	})
	s.registerDateWriter()
	RegisterType[IOutput](s.builder, func(deps Dependencies, _ *Parameters) (IOutput, error) {
		Dependency[*serviceD](deps, 0)
		return &ConsoleOutput{Lines: []string{"replacement"}}, nil
	}, KeyOf[*serviceD]())
	RegisterType[*serviceD](s.builder, func(Dependencies, *Parameters) (*serviceD, error) {
		return &serviceD{}, nil
	})

	container, err := s.builder.Build()
	s.Require().NoError(err)

	output := MustResolve[IOutput](container).(*ConsoleOutput)
	s.Equal([]string{"replacement"}, output.Lines)

	// The replacement kept the first registration's slot and its new
	// dependency was honored, so serviceD precedes it in build order.
	s.Equal([]TypeKey{KeyOf[*serviceD](), KeyOf[IOutput](), KeyOf[IDateWriter]()}, container.Keys())
}

func (s *ContainerTestSuite) TestResolveUnknown() {
	s.registerOutput()

	container, err := s.builder.Build()
	s.Require().NoError(err)

	s.NotPanics(func() {
		_, err := Resolve[IDateWriter](container)

		var notFound *NotFoundError
		s.Require().ErrorAs(err, &notFound)
		s.Equal(KeyOf[IDateWriter](), notFound.Key)
	})

	s.False(container.Has(KeyOf[IDateWriter]()))
	s.Panics(func() { MustResolve[IDateWriter](container) })
}

func (s *ContainerTestSuite) TestResolveMismatchedInstance() {
	s.builder.Register(KeyOf[IOutput](), func(Dependencies, *Parameters) (any, error) {
		return struct{}{}, nil
	})

	container, err := s.builder.Build()
	s.Require().NoError(err)

	instance, err := container.ResolveKey(KeyOf[IOutput]())
	s.NoError(err)
	s.NotNil(instance)

	s.NotPanics(func() {
		_, err := Resolve[IOutput](container)

		var notFound *NotFoundError
		s.Require().ErrorAs(err, &notFound)
		s.Equal(KeyOf[IOutput](), notFound.Key)
	})
}

func (s *ContainerTestSuite) TestBuildConsumesBuilder() {
	s.registerOutput()

	_, err := s.builder.Build()
	s.Require().NoError(err)

	_, err = s.builder.Build()
	s.ErrorIs(err, ErrBuilderConsumed)

	s.Panics(func() { s.registerOutput() })
}

func (s *ContainerTestSuite) TestFailedBuildConsumesBuilder() {
	RegisterType[IDateWriter](s.builder, func(Dependencies, *Parameters) (IDateWriter, error) {
		return nil, nil
	}, KeyOf[IOutput]())

	_, err := s.builder.Build()
	s.Error(err)

	_, err = s.builder.Build()
	s.ErrorIs(err, ErrBuilderConsumed)
}

func (s *ContainerTestSuite) TestNilInstanceResolvesToZero() {
	RegisterType[IOutput](s.builder, func(Dependencies, *Parameters) (IOutput, error) {
		return nil, nil
	})

	container, err := s.builder.Build()
	s.Require().NoError(err)

	output, err := Resolve[IOutput](container)
	s.NoError(err)
	s.Nil(output)
	s.True(container.Has(KeyOf[IOutput]()))
}

func (s *ContainerTestSuite) TestIntrospection() {
	s.registerOutput()
	s.registerDateWriter()

	container, err := s.builder.Build()
	s.Require().NoError(err)

	s.Equal(2, container.Size())
	s.True(container.Has(KeyOf[IOutput]()))
	s.NotEqual(uuid.Nil, container.ID())

	keys := container.Keys()
	keys[0] = 0
	s.Equal([]TypeKey{KeyOf[IOutput](), KeyOf[IDateWriter]()}, container.Keys())
}

func (s *ContainerTestSuite) TestBuildLogging() {
	var buf strings.Builder
	builder := NewBuilder(WithLogger(zerolog.New(&buf)))

	RegisterType[IOutput](builder, func(Dependencies, *Parameters) (IOutput, error) {
		return &ConsoleOutput{}, nil
	})

	_, err := builder.Build()
	s.Require().NoError(err)

	log := buf.String()
	s.Contains(log, "component registered")
	s.Contains(log, "build started")
	s.Contains(log, "component built")
	s.Contains(log, "container built")
}

func TestContainer(t *testing.T) { suite.Run(t, new(ContainerTestSuite)) }

var benchCounts = make(map[string]int)

func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		builder := NewBuilder()
		registerDiamond(builder, benchCounts)

		if _, err := builder.Build(); err != nil {
			b.Fatal(err)
		}
	}
}

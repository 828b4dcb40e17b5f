// Package di wires typed components into an immutable container.
//
// Components are registered against the interface they implement, declare
// the interfaces they depend on as type keys, and are constructed by
// factories. Build resolves the dependency graph depth first, invokes every
// factory exactly once in dependency order and rejects cycles and missing
// registrations before a container exists. The resulting Container only
// resolves: registration is over once it is built.
//
//	builder := di.NewBuilder()
//
//	di.RegisterType[IOutput](builder, func(di.Dependencies, *di.Parameters) (IOutput, error) {
//		return &ConsoleOutput{}, nil
//	})
//
//	di.RegisterType[IDateWriter](builder, func(deps di.Dependencies, params *di.Parameters) (IDateWriter, error) {
//		prefix, _ := di.GetNamed[string](params, "prefix")
//		return &TodayWriter{Output: di.Dependency[IOutput](deps, 0), Prefix: prefix}, nil
//	}, di.KeyOf[IOutput]()).
//		WithNamedParameter("prefix", "Today is ")
//
//	container, err := builder.Build()
//	if err != nil {
//		return err
//	}
//
//	writer, err := di.Resolve[IDateWriter](container)
package di

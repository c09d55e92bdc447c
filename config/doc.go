// Package config provides configuration sources for profiling sessions.
//
// Every source implements [github.com/vcstoolkit/statprof.Source] plus
// the presence-aware [Lookuper] interface, so sources can be stacked
// with [Layered] the way version-control hosts cascade system, user,
// and repository configuration:
//
//	cfg := config.Layered{flagCfg, fileCfg, config.Map{"profiling.freq": "1000"}}
//
// Available sources:
//
//   - [Map]: a flat map keyed by "section.name", mainly for tests and
//     embedding hosts.
//   - [File]: a YAML file with one mapping per section, loaded with
//     [Load] or [Parse]. [Schema] describes the accepted layout as a
//     JSON Schema for editor validation.
//   - [Config]: CLI flag values bound with [Config.RegisterFlags] and
//     completed with [Config.RegisterCompletions].
package config

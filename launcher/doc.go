// Package launcher turns parsed command-line options into a running Kraken
// application process.
//
// # Overview
//
// A launch has two phases. [Launcher.Prepare] resolves the platform, the
// path of the prebuilt binary and the environment the binary reads its
// settings from. [Launcher.Run] spawns the binary with that environment,
// relays stdout unchanged and relays stderr through a [LineFilter].
//
//	l := launcher.New(launcher.WithInstallRoot(root))
//	plan, err := l.Prepare(opts)
//	if err != nil {
//	    return err
//	}
//	code, err := l.Run(ctx, plan)
//
// # Environment
//
// The binary is configured only through environment variables. At most one
// of [EnvBundlePath] and [EnvBundleURL] is ever present in the child
// environment; inherited values of those keys are dropped.
//
// # Spawning
//
// Process creation goes through the [Spawner] interface so tests can
// replace the real binary. [ExecSpawner] is the os/exec implementation.
package launcher

// Package shared holds helpers used by more than one package.
//
// The testutil subpackage captures slog output so tests can assert on
// what an invocation logged:
//
//	logger, logs := testutil.NewTestLogger(t)
//	d := app.NewDispatcher(cfg, logger, nil)
//	d.Run(ctx, args)
//	testutil.AssertLogContains(t, logs, slog.LevelInfo, "Invocation completed")
//
// Nothing here may depend on domain packages.
package shared

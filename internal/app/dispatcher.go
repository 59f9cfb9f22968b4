package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tabprep/internal/config"
	"tabprep/internal/dataset"
	"tabprep/internal/envelope"
	apperrors "tabprep/internal/errors"
	"tabprep/internal/infrastructure"
	"tabprep/internal/preprocessing"
	"tabprep/internal/validation"
)

// Invocation is the parsed command line.
type Invocation struct {
	FilePath  string `arg:"file_path" validate:"required"`
	Operation string `arg:"preprocessing_type" validate:"required"`
	Method    string `arg:"method"`
}

// Outcome is the result of one run.
type Outcome struct {
	Envelope   envelope.Envelope
	ExitCode   int
	Err        error
	OutputPath string
}

// Dispatcher maps an invocation onto one preprocessing operation.
type Dispatcher struct {
	cfg       *config.Config
	registry  *preprocessing.Registry
	args      *validation.ArgumentValidator
	files     *validation.FileValidator
	loader    *dataset.Loader
	writer    *dataset.Writer
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher with the built-in operations. A nil
// telemetry disables tracing and metrics.
func NewDispatcher(cfg *config.Config, logger *slog.Logger, telemetry *infrastructure.Telemetry) *Dispatcher {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = infrastructure.DiscardLogger()
	}
	if telemetry == nil {
		telemetry = infrastructure.NoopTelemetry()
	}
	return &Dispatcher{
		cfg:      cfg,
		registry: preprocessing.DefaultRegistry(),
		args:     validation.NewArgumentValidator(),
		files:    validation.NewFileValidator(logger),
		loader: dataset.NewLoader(dataset.LoaderOptions{
			ExtraNAValues: cfg.Loader.NAValues,
			MaxFileSize:   cfg.Loader.MaxFileSize,
		}, logger),
		writer: dataset.NewWriter(dataset.WriteOptions{
			BOMPrefix: cfg.Output.BOM,
			Atomic:    cfg.Output.Atomic,
		}, logger),
		telemetry: telemetry,
		logger:    infrastructure.WithComponent(logger, "dispatcher"),
	}
}

// ParseArgs binds the positional arguments that follow the program name.
func (d *Dispatcher) ParseArgs(args []string) (Invocation, error) {
	if len(args) < 2 || len(args) > 3 {
		return Invocation{}, apperrors.NewArgumentError(config.ErrMsgInvalidArguments).
			WithContext("arg_count", len(args))
	}
	inv := Invocation{FilePath: args[0], Operation: args[1]}
	if len(args) == 3 {
		inv.Method = args[2]
	}
	if err := d.args.ValidateStruct(inv); err != nil {
		return Invocation{}, apperrors.NewArgumentError(config.ErrMsgInvalidArguments).
			WithContext("reason", err.Error())
	}
	return inv, nil
}

// Run executes one invocation. It never panics and always returns an
// envelope to emit.
func (d *Dispatcher) Run(ctx context.Context, args []string) Outcome {
	ctx = infrastructure.EnsureTraceID(ctx)
	start := time.Now()

	ctx, span := d.telemetry.Tracer.Start(ctx, "preprocess")
	defer span.End()

	inv, err := d.ParseArgs(args)
	if err == nil {
		span.SetAttributes(
			attribute.String("preprocess.operation", inv.Operation),
			attribute.String("preprocess.method", inv.Method),
			attribute.String("preprocess.file", inv.FilePath))
		d.logger.InfoContext(ctx, "Invocation started",
			slog.String("operation", inv.Operation),
			slog.String("method", inv.Method),
			slog.String("file", inv.FilePath))
	}

	var (
		result     *preprocessing.Result
		outputPath string
		rowsIn     int
	)
	if err == nil {
		result, outputPath, rowsIn, err = d.execute(ctx, inv)
	}

	rec := infrastructure.InvocationRecord{
		Operation: inv.Operation,
		Method:    inv.Method,
		Duration:  time.Since(start),
		RowsIn:    rowsIn,
	}

	if err != nil {
		rec.ErrorType = string(apperrors.TypeOf(err))
		d.telemetry.RecordInvocation(ctx, rec)
		infrastructure.RecordError(ctx, err)
		return d.failure(ctx, err)
	}

	rec.RowsRemoved = result.Summary.Removed()
	d.telemetry.RecordInvocation(ctx, rec)
	d.logger.InfoContext(ctx, "Invocation completed",
		slog.String("operation", inv.Operation),
		slog.String("output", outputPath),
		slog.Int("rows_in", rowsIn),
		slog.Int("rows_out", result.Table.Rows()),
		slog.Duration("duration", rec.Duration))

	return Outcome{
		Envelope:   envelope.Success{FilePath: outputPath, Summary: result.Summary},
		ExitCode:   config.ExitSuccess,
		OutputPath: outputPath,
	}
}

// execute runs the steps after argument parsing.
func (d *Dispatcher) execute(ctx context.Context, inv Invocation) (*preprocessing.Result, string, int, error) {
	if err := d.files.ValidateFile(inv.FilePath); err != nil {
		return nil, "", 0, err
	}

	op, err := d.registry.Get(inv.Operation)
	if err != nil {
		return nil, "", 0, err
	}
	if err := d.registry.ValidateMethod(op, inv.Method); err != nil {
		return nil, "", 0, err
	}
	d.logger.DebugContext(ctx, "Operation selected",
		slog.String("operation", op.ID()),
		slog.String("operation_name", op.Name()),
		slog.Bool("requires_method", op.RequiresMethod()))
	method := inv.Method
	if !op.RequiresMethod() {
		method = ""
	}

	if dir := d.cfg.Output.Dir; dir != "" {
		if err := d.files.ValidateOutputDirectory(dir); err != nil {
			return nil, "", 0, apperrors.NewOperationError(op.ErrorPrefix(), err)
		}
	}

	table, err := d.load(ctx, inv.FilePath)
	if err != nil {
		return nil, "", 0, err
	}

	result, err := d.transform(ctx, op, table, method)
	if err != nil {
		return nil, "", table.Rows(), err
	}

	outputPath := dataset.DerivePath(inv.FilePath, op.OutputSuffix(method), d.cfg.Output.Dir)
	if err := d.write(ctx, outputPath, result.Table); err != nil {
		return nil, "", table.Rows(), apperrors.NewOperationError(op.ErrorPrefix(), err)
	}

	return result, outputPath, table.Rows(), nil
}

func (d *Dispatcher) load(ctx context.Context, path string) (*dataset.Table, error) {
	ctx, span := d.telemetry.Tracer.Start(ctx, "preprocess.load")
	defer span.End()

	table, info, err := d.loader.Load(ctx, path)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("dataset.format", info.Format),
		attribute.String("dataset.encoding", info.Encoding),
		attribute.String("dataset.delimiter", info.Delimiter),
		attribute.Int("dataset.rows", table.Rows()),
		attribute.Int("dataset.columns", table.Cols()))
	return table, nil
}

func (d *Dispatcher) transform(ctx context.Context, op preprocessing.Operation, table *dataset.Table, method string) (*preprocessing.Result, error) {
	ctx, span := d.telemetry.Tracer.Start(ctx, "preprocess.transform",
		trace.WithAttributes(attribute.String("preprocess.operation", op.ID())))
	defer span.End()

	result, err := preprocessing.Execute(ctx, op, table, method)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	infrastructure.AddSpanEvent(ctx, "transform.completed",
		attribute.Int("rows_out", result.Table.Rows()),
		attribute.Int("rows_removed", result.Summary.Removed()))
	d.logger.DebugContext(ctx, "Transform completed",
		slog.String("operation", op.ID()),
		slog.Any("summary", result.Summary))
	return result, nil
}

func (d *Dispatcher) write(ctx context.Context, path string, table *dataset.Table) error {
	ctx, span := d.telemetry.Tracer.Start(ctx, "preprocess.write",
		trace.WithAttributes(attribute.String("preprocess.output", path)))
	defer span.End()

	if err := d.writer.Write(ctx, path, table); err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}
	return nil
}

// failure converts err into an error envelope and applies the exit-code
// policy.
func (d *Dispatcher) failure(ctx context.Context, err error) Outcome {
	errType := apperrors.TypeOf(err)
	code := d.ExitCode(err)

	logger := infrastructure.WithError(d.logger, err)
	attrs := []any{
		slog.String("error_type", string(errType)),
		slog.Int("exit_code", code),
	}
	if appErr, ok := apperrors.As(err); ok && len(appErr.Context) > 0 {
		attrs = append(attrs, slog.Any("error_context", appErr.Context))
	}
	logger.ErrorContext(ctx, "Invocation failed", attrs...)
	if code == config.ExitSuccess {
		logger.WarnContext(ctx, "Error envelope emitted with exit status 0; set PREP_EXIT_STRICT_EXIT_CODES=true to exit 1",
			slog.String("error_type", string(errType)))
	}

	return Outcome{
		Envelope: envelope.NewFailure(err),
		ExitCode: code,
		Err:      err,
	}
}

// ExitCode returns the process status for err. Argument and missing-file
// errors exit 1; other errors exit 0 unless strict exit codes are enabled.
func (d *Dispatcher) ExitCode(err error) int {
	if err == nil {
		return config.ExitSuccess
	}
	if d.cfg.Exit.StrictExitCodes {
		return config.ExitFailure
	}
	switch apperrors.TypeOf(err) {
	case apperrors.ErrTypeArgument, apperrors.ErrTypeFileNotFound:
		return config.ExitFailure
	default:
		return config.ExitSuccess
	}
}

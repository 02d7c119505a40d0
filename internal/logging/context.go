package logging

import "context"

type ctxKey struct{}

// ContextWith returns a copy of ctx carrying key–value pairs. Every Logger
// prepends them to the args of entries logged with that context, e.g. the
// request id of an API call.
func ContextWith(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := fromContext(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	args, _ := ctx.Value(ctxKey{}).([]any)
	return args
}

// withContext returns the context pairs followed by args.
func withContext(ctx context.Context, args []any) []any {
	scoped := fromContext(ctx)
	if len(scoped) == 0 {
		return args
	}
	out := make([]any, 0, len(scoped)+len(args))
	out = append(out, scoped...)
	return append(out, args...)
}

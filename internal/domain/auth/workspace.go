package auth

import "context"

type workspaceKey struct{}

// WithWorkspace scopes ctx to a single workspace. Services reading ctx only
// see rows belonging to it.
func WithWorkspace(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, workspaceKey{}, workspaceID)
}

// WorkspaceFromContext returns the workspace ctx is scoped to. Unscoped
// contexts, such as the lifecycle sweeps, report false.
func WorkspaceFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(workspaceKey{}).(string)
	return id, ok && id != ""
}

// InWorkspace reports whether a row owned by workspaceID is visible from ctx.
func InWorkspace(ctx context.Context, workspaceID string) bool {
	scope, ok := WorkspaceFromContext(ctx)
	return !ok || scope == workspaceID
}

package notify

import (
	"context"

	"github.com/specialistvlad/mkr/internal/behavior"
	"github.com/specialistvlad/mkr/internal/capability"
	"github.com/specialistvlad/mkr/internal/target"
)

// Event names sent to the server.
const (
	EventBuildStarting  = "build_starting"
	EventBuildFinished  = "build_finished"
	EventBuildFailed    = "build_failed"
	EventTargetStarting = "target_starting"
	EventTargetFinished = "target_finished"
)

// Notifier forwards build progress to a Client. Without a URL it only
// delegates.
type Notifier struct {
	behavior.Base
	url    string
	dial   Dialer
	client Client
	build  capability.Build
}

// New returns a Notifier. url may be empty and set later with -notify.
func New(url string, dial Dialer) *Notifier {
	return &Notifier{url: url, dial: dial}
}

// Connected reports whether events are being sent.
func (n *Notifier) Connected() bool { return n.client != nil }

// Run connects when a URL is configured, runs the build beneath and closes
// the connection afterwards.
func (n *Notifier) Run(ctx context.Context, b capability.Build, invoke capability.Invoker, args []string) error {
	n.build = b
	if n.url != "" {
		n.connect(ctx)
	}
	defer n.close()

	err := behavior.MustResolveBeneath[capability.Runner](n).Run(ctx, b, invoke, args)
	if err != nil {
		n.emit(EventBuildFailed, map[string]any{"error": err.Error()})
	}
	return err
}

// Parameters handles -notify URL.
func (n *Notifier) Parameters(ctx context.Context, b capability.Build, params []string) (int, error) {
	if params[0] != "-notify" {
		return behavior.MustResolveBeneath[capability.Parameterized](n).Parameters(ctx, b, params)
	}
	if len(params) < 2 {
		return 2, nil
	}
	n.build = b
	n.close()
	n.url = params[1]
	n.connect(ctx)
	return 0, nil
}

func (n *Notifier) BuildStarting(ctx context.Context, b capability.Build) {
	n.emit(EventBuildStarting, nil)
	behavior.MustResolveBeneath[capability.BuildEvents](n).BuildStarting(ctx, b)
}

func (n *Notifier) BuildFinished(ctx context.Context, b capability.Build) {
	behavior.MustResolveBeneath[capability.BuildEvents](n).BuildFinished(ctx, b)
	n.emit(EventBuildFinished, nil)
}

func (n *Notifier) TargetStarting(ctx context.Context, t target.Target) {
	n.emit(EventTargetStarting, map[string]any{"target": t.Name})
	behavior.MustResolveBeneath[capability.TargetEvents](n).TargetStarting(ctx, t)
}

func (n *Notifier) TargetFinished(ctx context.Context, t target.Target) {
	behavior.MustResolveBeneath[capability.TargetEvents](n).TargetFinished(ctx, t)
	n.emit(EventTargetFinished, map[string]any{"target": t.Name})
}

// connect failures are reported as warnings; the build goes on without
// notifications.
func (n *Notifier) connect(ctx context.Context) {
	if n.dial == nil {
		return
	}
	client, err := n.dial(ctx, n.url)
	if err != nil {
		behavior.MustAs[capability.Loggers](n).Warn().Log(ctx, "Notifications disabled: "+err.Error())
		return
	}
	n.client = client
	behavior.MustAs[capability.Loggers](n).Verbose().Log(ctx, "Sending build events to "+n.url)
}

func (n *Notifier) close() {
	if n.client == nil {
		return
	}
	n.client.Close()
	n.client = nil
}

func (n *Notifier) emit(event string, fields map[string]any) {
	if n.client == nil {
		return
	}
	payload := map[string]any{}
	if n.build != nil {
		payload["build"] = n.build.Name()
		payload["session"] = n.build.ID()
	}
	for k, v := range fields {
		payload[k] = v
	}
	n.client.Emit(event, payload)
}

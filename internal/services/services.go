// Package services binds the generic resource controller to the records of
// the task manager, the expense tracker and the ticket booking system.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"resource-console/internal/resource"
	"resource-console/internal/restclient"
	"resource-console/monitoring"
)

// Options are shared by every service of one app.
type Options struct {
	Banner    *resource.Banner
	Confirmer resource.Confirmer
	Logger    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Banner == nil {
		o.Banner = resource.NewBanner()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func (o Options) controller(msgs resource.Messages) resource.Options {
	return resource.Options{
		Messages:  msgs,
		Banner:    o.Banner,
		Confirmer: o.Confirmer,
		Logger:    o.Logger,
	}
}

// view reads a derived, uncached resource such as a total or a report.
// Failures raise msg on the banner like any controller operation.
type view struct {
	name   string
	client *restclient.Client
	banner *resource.Banner
	logger *slog.Logger
}

func fetch[T any](ctx context.Context, v view, msg, path string, query url.Values) (T, error) {
	var out T
	if err := v.client.Get(ctx, path, query, &out); err != nil {
		v.banner.Set(msg)
		monitoring.TrackOperation(v.name, "view", "failure")
		v.logger.Warn("view failed", "resource", v.name, "path", path, "error", err)
		return out, fmt.Errorf("view %s: %w", path, err)
	}
	v.banner.Clear()
	monitoring.TrackOperation(v.name, "view", "success")
	return out, nil
}

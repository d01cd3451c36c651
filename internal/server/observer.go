package server

import (
	"github.com/hnrobert/envportal/internal/flow"
	"github.com/hnrobert/envportal/internal/logger"
	"github.com/hnrobert/envportal/internal/metric"
)

// flowLog logs flow activity and feeds the metrics. Field values never reach
// the log.
type flowLog struct {
	metrics *metric.Metrics
	via     string // page|ws|api
	remote  string
}

func (a *App) observer(via, remote string) flow.Observer {
	return flowLog{metrics: a.metrics, via: via, remote: remote}
}

func (o flowLog) FieldEdited(n flow.Name, field string) {
	o.metrics.FieldEdited(n, field)
}

func (o flowLog) SignalIgnored(n flow.Name, sig flow.Signal) {
	o.metrics.SignalIgnored(n, sig)
	logger.Info("Ignored %s signal on %s from %s (%s): submit disabled", sig, n, o.remote, o.via)
}

func (o flowLog) Resolved(n flow.Name, sig flow.Signal, d flow.Decision) {
	o.metrics.Resolved(n, sig, d)
	logger.Info("Resolved %s from %s via %s (%s): %s", n, o.remote, sig, o.via, metric.Outcome(d))
}

package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/beckagarrison/caseintake/internal/extract"
	"github.com/beckagarrison/caseintake/internal/ingest"
)

type poolResult struct {
	out extract.Outcome
	err error
}

// runPooled extracts with a bounded worker pool but consumes outcomes in
// input order, so callbacks, log lines, and progress events keep the same
// ordering guarantee as sequential processing. Analysis and fan-out stay on
// the consumer goroutine.
func (o *Orchestrator) runPooled(ctx context.Context, items []ingest.UploadItem, sink Sink, sum *Summary) error {
	results := make([]chan poolResult, len(items))
	for i := range results {
		results[i] = make(chan poolResult, 1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Workers)
	for i := range items {
		g.Go(func() error {
			out, err := o.extractor.Extract(gctx, items[i].Name, items[i].Data)
			results[i] <- poolResult{out: out, err: err}
			return err
		})
	}

	var consumeErr error
	for i, item := range items {
		o.notify(sink, Event{Kind: EventStarted, Name: item.Name})
		r := <-results[i]
		if r.err != nil {
			consumeErr = r.err
			break
		}
		if err := o.finishItem(ctx, item, r.out, sink, sum); err != nil {
			consumeErr = err
			break
		}
	}

	if err := g.Wait(); consumeErr == nil && err != nil {
		consumeErr = err
	}
	return consumeErr
}

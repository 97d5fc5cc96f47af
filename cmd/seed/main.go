// Command seed queues label records from a JSON file for ingest.
//
// The file holds an array of label objects:
//
//	[{"prettyUrlName": "basic-science", "idString": "basic_science", "label": "Basic Science"}]
//
// Each label becomes one label:upsert task processed by the API's workers.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/lib/job"
	"github.com/deppfellow/label-lookup/internal/lib/utils"
	"github.com/deppfellow/label-lookup/internal/logger"
	"github.com/deppfellow/label-lookup/internal/model"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// enqueuer is the part of asynq.Client seed uses.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func newRootCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:          "seed <labels.json>",
		Short:        "Queue label records for ingest",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "opening labels file")
			}
			defer f.Close()

			labels, err := readLabels(f)
			if err != nil {
				return err
			}

			if dryRun {
				return utils.PrintJSON(cmd.OutOrStdout(), labels)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			log := logger.NewLogger(cfg.Observability)

			client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Address})
			defer client.Close()

			return enqueueLabels(cmd.Context(), &log, client, labels)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the parsed labels instead of queueing them")

	return cmd
}

// readLabels decodes a JSON array of labels.
func readLabels(r io.Reader) ([]model.LabelInformation, error) {
	var labels []model.LabelInformation
	if err := json.NewDecoder(r).Decode(&labels); err != nil {
		return nil, errors.Wrap(err, "decoding labels")
	}
	return labels, nil
}

// enqueueLabels queues one task per label. Every label is validated before
// any is queued, so a bad file queues nothing.
func enqueueLabels(ctx context.Context, log *zerolog.Logger, client enqueuer, labels []model.LabelInformation) error {
	tasks := make([]*asynq.Task, 0, len(labels))
	for i, label := range labels {
		task, err := job.NewUpsertLabelTask(label)
		if err != nil {
			return errors.Wrapf(err, "label %d", i)
		}
		tasks = append(tasks, task)
	}

	for i, task := range tasks {
		info, err := client.EnqueueContext(ctx, task)
		if err != nil {
			return errors.Wrapf(err, "enqueueing %q", labels[i].PrettyUrlName)
		}

		log.Info().
			Str("task_id", info.ID).
			Str("queue", info.Queue).
			Str("name", labels[i].PrettyUrlName).
			Msg("label queued")
	}

	log.Info().Int("count", len(tasks)).Msg("seed complete")
	return nil
}

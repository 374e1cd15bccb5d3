package main

import (
	"time"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/config"
	"github.com/aleister1102/newswatch/internal/datastore"
	"github.com/aleister1102/newswatch/internal/differ"
	"github.com/aleister1102/newswatch/internal/extractor"
	"github.com/aleister1102/newswatch/internal/httpclient"
	"github.com/aleister1102/newswatch/internal/notifier"
	"github.com/aleister1102/newswatch/internal/orchestrator"
	"github.com/rs/zerolog"
)

// buildOrchestrator assembles the run pipeline from configuration.
func buildOrchestrator(gCfg *config.GlobalConfig, credential string, logger zerolog.Logger) (*orchestrator.Orchestrator, error) {
	fetchClient, err := httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(time.Duration(gCfg.HTTPConfig.TimeoutSecs) * time.Second).
		WithUserAgent(gCfg.HTTPConfig.UserAgent).
		WithInsecureSkipVerify(gCfg.HTTPConfig.InsecureSkipVerify).
		WithMaxContentSize(gCfg.HTTPConfig.MaxContentMB * 1024 * 1024).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to create fetch client")
	}

	contentDiffer, err := differ.NewContentDifferBuilder(logger).
		WithDiffConfig(differ.DefaultDiffConfig()).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to create differ")
	}

	return orchestrator.NewOrchestrator(orchestrator.Dependencies{
		Extractor: extractor.NewExtractor(fetchClient, logger),
		Snapshots: datastore.NewSnapshotStore(gCfg.StorageConfig.SnapshotDir, logger),
		ChangeLog: datastore.NewChangeLog(gCfg.StorageConfig.ChangeLogFile, common.FixedZoneClock(common.JST), logger),
		Differ:    contentDiffer,
		Notifier:  notifier.NewWebhookNotifier(gCfg.NotificationConfig, credential, logger),
	}, logger), nil
}

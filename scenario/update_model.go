package scenario

import (
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/check"
	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/config/modelcheckconfig"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

const (
	UpdateModelName  = "update_model"
	UpdateModelGroup = "Model API: UpdateModel"

	createCheckPrefix = "POST /v1alpha/models:multipart (multipart) task cls response "
	updateCheckPrefix = "UpdateModel response "

	DeleteCheck = "Delete model status is OK"

	// Step names used in RunResult.Steps.
	StepCreate = "create"
	StepUpdate = "update"
	StepDelete = "delete"
)

// UpdateModelScenario creates a model over REST multipart, updates its
// description over gRPC and deletes it. The delete always runs.
type UpdateModelScenario struct{}

func (s *UpdateModelScenario) Name() string {
	return UpdateModelName
}

func (s *UpdateModelScenario) Run(ctx context.Context, env *Env) (*RunResult, error) {
	id := env.identity()
	name := modelapi.ModelName(id.ID)
	stat := env.stats().Scope("scenario", s.Name())
	stat.Counter(stats.ScenarioIterationCounter).Inc(1)
	failed := stat.Counter(stats.ScenarioFailedIterationCounter)
	start := time.Now()
	iteration := stat.Latency(stats.ScenarioIterationLatency_ms).Time()
	defer iteration.Stop()

	log.WithField("model", name).Debug("starting update_model")
	client, err := env.Grpc.Dial(ctx)
	if err != nil {
		return nil, mcerror.NewError(err, mcerror.ConnectFailureExitCode)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Warnf("closing channel for %s: %v", name, err)
		}
	}()

	group := env.Report.Group(UpdateModelGroup)
	result := &RunResult{Identity: id, Steps: make(map[string]time.Duration)}

	watch := stat.Latency(stats.ScenarioCreateLatency_ms).Time()
	created, err := env.Rest.CreateModelMultipart(ctx, modelapi.CreateModelForm{
		Name:                name,
		Description:         id.Description,
		ModelDefinitionName: env.Config.ModelDefinition,
		FileName:            env.Fixture.Name,
		Content:             env.Fixture.Content,
	})
	result.Steps[StepCreate] = watch.Stop()
	if err != nil {
		stat.Counter(stats.ScenarioTransportErrCounter).Inc(1)
		log.Warnf("create %s: %v", name, err)
	} else if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("create response: %s", spew.Sdump(created.StatusCode, created.Model()))
	}
	group.CheckAll(CreateChecks(created, id, env.Config)...)

	watch = stat.Latency(stats.ScenarioUpdateLatency_ms).Time()
	updated := client.UpdateModel(ctx, &modelpb.Model{
		Name:        name,
		Description: env.Config.NewDescription,
	}, "description")
	result.Steps[StepUpdate] = watch.Stop()
	if updated.Err != nil {
		log.Warnf("update %s: %v", name, updated.Err)
	}
	group.CheckAll(UpdateChecks(updated, id, env.Config)...)

	// Cleanup must not be skipped because the run was cancelled.
	cleanupCtx := ctx
	if ctx.Err() != nil {
		cleanupCtx = context.Background()
	}
	watch = stat.Latency(stats.ScenarioDeleteLatency_ms).Time()
	deleted := client.DeleteModel(cleanupCtx, name)
	result.Steps[StepDelete] = watch.Stop()
	if deleted.Err != nil {
		log.Warnf("delete %s: %v", name, deleted.Err)
	}
	group.Check(DeleteCheck, func() bool { return deleted.OK() })

	result.Passes, result.Fails = group.Passes(), group.Fails()
	result.Duration = time.Since(start)
	if result.Fails > 0 {
		failed.Inc(1)
	}
	return result, nil
}

// CreateChecks are the checks run on the multipart create response. resp may
// be nil when the request could not be sent.
func CreateChecks(resp *modelapi.RestResponse, id Identity, cfg modelcheckconfig.Config) []check.Case {
	m := resp.Model
	return []check.Case{
		{Name: "POST /v1alpha/models:multipart task cls response status", Predicate: func() bool {
			return resp.StatusCode == http.StatusCreated
		}},
		{Name: createCheckPrefix + "model.name", Predicate: func() bool {
			return m().Name == modelapi.ModelName(id.ID)
		}},
		{Name: createCheckPrefix + "model.uid", Predicate: func() bool {
			return m().Uid != ""
		}},
		{Name: createCheckPrefix + "model.id", Predicate: func() bool {
			return m().Id == id.ID
		}},
		{Name: createCheckPrefix + "model.description", Predicate: func() bool {
			return m().Description == id.Description
		}},
		{Name: createCheckPrefix + "model.model_definition", Predicate: func() bool {
			return m().ModelDefinition == cfg.ModelDefinition
		}},
		{Name: createCheckPrefix + "model.configuration", Predicate: func() bool {
			return len(m().GetConfiguration().GetFields()) > 0
		}},
		{Name: createCheckPrefix + "model.visibility", Predicate: func() bool {
			return m().Visibility.String() == cfg.Visibility
		}},
		{Name: createCheckPrefix + "model.user", Predicate: func() bool {
			return m().User == cfg.Owner
		}},
		{Name: createCheckPrefix + "model.create_time", Predicate: func() bool {
			return m().CreateTime != nil
		}},
		{Name: createCheckPrefix + "model.update_time", Predicate: func() bool {
			return m().UpdateTime != nil
		}},
	}
}

// UpdateChecks are the checks run on the UpdateModel response.
func UpdateChecks(res *modelapi.UpdateModelResult, id Identity, cfg modelcheckconfig.Config) []check.Case {
	m := res.Model
	return []check.Case{
		{Name: updateCheckPrefix + "status", Predicate: func() bool {
			return res.OK()
		}},
		{Name: updateCheckPrefix + "model.name", Predicate: func() bool {
			return m().Name == modelapi.ModelName(id.ID)
		}},
		{Name: updateCheckPrefix + "model.uid", Predicate: func() bool {
			return m().Uid != ""
		}},
		{Name: updateCheckPrefix + "model.id", Predicate: func() bool {
			return m().Id == id.ID
		}},
		{Name: updateCheckPrefix + "model.description", Predicate: func() bool {
			return m().Description == cfg.NewDescription
		}},
		{Name: updateCheckPrefix + "model.model_definition", Predicate: func() bool {
			return m().ModelDefinition == cfg.ModelDefinition
		}},
		{Name: updateCheckPrefix + "model.configuration", Predicate: func() bool {
			return len(m().GetConfiguration().GetFields()) > 0
		}},
		{Name: updateCheckPrefix + "model.visibility", Predicate: func() bool {
			return m().Visibility.String() == cfg.Visibility
		}},
		{Name: updateCheckPrefix + "model.user", Predicate: func() bool {
			return m().User == cfg.Owner
		}},
		{Name: updateCheckPrefix + "model.create_time", Predicate: func() bool {
			return m().CreateTime != nil
		}},
		{Name: updateCheckPrefix + "model.update_time", Predicate: func() bool {
			return m().UpdateTime != nil
		}},
	}
}

package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	mcerror "github.com/twitter/modelcheck/common/errors"
	"github.com/twitter/modelcheck/common/log/hooks"
	"github.com/twitter/modelcheck/modelapi/client"
	"github.com/twitter/modelcheck/scenario"
)

// CLI binary to check a model service
//	Supported commands: (see "-h" for all options)
//		run_scenario [name]
//		load_test --vus N --iterations N --duration D --rate R
//		serve_fake --addr host:port
//	Global flags:
//		--config [YAML file, CFG_<KEY> environment variables override it]
//		--api_host [REST base URL of the model service]
//		--grpc_addr [<host:port> of the model service]
// 		--log_level [<error|info|debug> level and above should be logged]
//	Exit codes: 0 all checks passed, 70 connect failure, 71 checks failed, 72 bad config.

func main() {
	log.AddHook(hooks.NewContextHook())

	cl, err := client.NewSimpleCLIClient(scenario.DefaultRegistry(), os.Stdout)
	if err != nil {
		log.Fatal("Failed to create modelcl client: ", err)
	}

	if err := cl.Exec(); err != nil {
		log.Error("Error running modelcl: ", err)
		os.Exit(int(mcerror.ExitCodeOf(err, mcerror.GenericFailureExitCode)))
	}
}

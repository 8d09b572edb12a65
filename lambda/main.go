package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/google/uuid"
	"github.com/mbland/addrcheck/agent"
	"github.com/mbland/addrcheck/db"
	"github.com/mbland/addrcheck/email"
	"github.com/mbland/addrcheck/handler"
	"github.com/mbland/addrcheck/ops"
)

func buildHandler() (h *handler.Handler, err error) {
	var cfg aws.Config
	var opts *handler.Options

	if cfg, err = ops.LoadDefaultAwsConfig(context.Background()); err != nil {
		return
	} else if opts, err = handler.GetOptions(os.Getenv); err != nil {
		return
	}

	h = handler.NewHandler(
		&agent.ProdAgent{
			Validator:      email.NewValidator(opts.EmailOptions()),
			Db:             db.NewDynamoDb(&cfg, opts.ResultsTableName),
			NewUid:         uuid.NewRandom,
			CurrentTime:    time.Now,
			MaxConcurrency: opts.MaxConcurrency,
			Log:            log.Default(),
		},
		log.Default(),
	)
	return
}

func main() {
	// Disable standard logger flags. The CloudWatch logs show that the Lambda
	// runtime already adds a timestamp at the beginning of every log line
	// emitted by the function.
	log.SetFlags(0)

	if h, err := buildHandler(); err != nil {
		log.Fatalf("Failed to initialize process: %s", err.Error())
	} else {
		lambda.Start(h.HandleEvent)
	}
}

package cmd

import (
	"context"

	"docsync/internal/handler"
	"docsync/internal/remote"
	"docsync/pkg/logging"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

// lambdaCmd runs docsync as the CloudFormation custom resource handler.
var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as the CloudFormation custom resource Lambda handler",
	Long: `Starts the AWS Lambda runtime loop. Every invocation is a CloudFormation
custom resource event; the outcome is reported back to CloudFormation through
the pre-signed response URL carried by the event.

Logs are written to stdout as JSON lines. The region and credentials come
from the Lambda execution environment unless overridden.`,
	Args: cobra.NoArgs,
	RunE: runLambda,
}

func runLambda(cmd *cobra.Command, args []string) error {
	cfg, err := loadRuntimeConfig(cmd)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logging.LevelInfo
	}
	logging.InitForLambda(level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := remote.NewSSMClient(ctx, clientOptions(cfg))
	if err != nil {
		return err
	}

	h := handler.New(remote.NewSSMService(client), reconcilerOptions(cfg))
	logging.Info("CLI", "Starting Lambda handler (system tag prefix %q)", cfg.Tags.SystemPrefix)

	lambda.Start(cfn.LambdaWrap(h.Handle))
	return nil
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/zyte-go/zyte/internal/config"
	"github.com/zyte-go/zyte/internal/deploy"
	"github.com/zyte-go/zyte/internal/errors"
)

func deployCmd() *cobra.Command {
	var (
		bucket    string
		region    string
		prefix    string
		skipBuild bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the static export to S3",
		Long: `Upload the static export to S3.

Runs the static export first unless --skip-build is given, then uploads
the output directory to the configured bucket. Credentials are read
from the standard AWS environment variables.

Examples:
  zyte deploy
  zyte deploy --bucket=my-site --region=eu-west-1
  zyte deploy --skip-build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(bucket, region, prefix, skipBuild)
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket (default from zyte.json)")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from zyte.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Upload the existing export without rebuilding")

	return cmd
}

func runDeploy(bucket, region, prefix string, skipBuild bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if bucket != "" {
		cfg.Deploy.Bucket = bucket
	}
	if region != "" {
		cfg.Deploy.Region = region
	}
	if prefix != "" {
		cfg.Deploy.Prefix = prefix
	}

	if !skipBuild {
		if err := runBuild("", false); err != nil {
			return err
		}
	}
	if _, err := os.Stat(cfg.OutputPath()); err != nil {
		return errors.New(errors.CodeDeployFailed).
			WithDetail("export directory %s does not exist", cfg.Paths.Output).
			WithSuggestion("Run `zyte build` first, or drop --skip-build.")
	}

	client, err := s3Client(cfg.Deploy.Region)
	if err != nil {
		return err
	}

	fmt.Println("  Deploying...")
	fmt.Println()

	uploader := deploy.New(client, deploy.Options{
		Bucket: cfg.Deploy.Bucket,
		Prefix: cfg.Deploy.Prefix,
		OnUpload: func(key string) {
			info("Uploaded %s", key)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	n, err := uploader.Upload(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}

	fmt.Println()
	success("Deployed %d objects to s3://%s", n, cfg.Deploy.Bucket)
	fmt.Println()

	return nil
}

// s3Client builds a client from the standard AWS environment variables.
func s3Client(region string) (*s3.Client, error) {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		return nil, errors.New(errors.CodeDeployFailed).
			WithDetail("no AWS region configured").
			WithSuggestion("Set deploy.region in zyte.json or the AWS_REGION environment variable.")
	}

	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if accessKey == "" || secretKey == "" {
		return nil, errors.New(errors.CodeDeployFailed).
			WithDetail("AWS credentials not found in the environment").
			WithSuggestion("Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.")
	}
	sessionToken := os.Getenv("AWS_SESSION_TOKEN")

	return s3.New(s3.Options{
		Region: region,
		Credentials: aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     accessKey,
				SecretAccessKey: secretKey,
				SessionToken:    sessionToken,
			}, nil
		}),
	}), nil
}

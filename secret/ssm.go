package secret

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/ardnew/specialize/log"
)

// Client is the subset of the SSM API used by [SSM].
type Client interface {
	GetParameter(
		ctx context.Context,
		params *ssm.GetParameterInput,
		optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

// SSM is a Provider backed by AWS Systems Manager Parameter Store.
// It is safe for concurrent use.
type SSM struct {
	mu     sync.Mutex
	client Client
	cache  map[string]string

	region  string
	profile string
	logger  log.Logger
}

// SSMOption configures an [SSM] provider.
type SSMOption func(*SSM)

// WithClient sets the client used for lookups instead of one created from
// the default AWS configuration.
func WithClient(c Client) SSMOption {
	return func(s *SSM) { s.client = c }
}

// WithRegion overrides the AWS region of the default configuration.
func WithRegion(region string) SSMOption {
	return func(s *SSM) { s.region = region }
}

// WithProfile selects a named profile from the shared AWS configuration.
func WithProfile(profile string) SSMOption {
	return func(s *SSM) { s.profile = profile }
}

// WithLogger sets the structured logger.
func WithLogger(logger log.Logger) SSMOption {
	return func(s *SSM) { s.logger = logger }
}

// NewSSM returns a provider. No AWS configuration is loaded until the first
// lookup.
func NewSSM(opts ...SSMOption) *SSM {
	s := &SSM{cache: make(map[string]string)}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Lookup returns the decrypted value of the parameter called name.
func (s *SSM) Lookup(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache[name]; ok {
		s.logger.TraceContext(ctx, "parameter cache hit", slog.String("name", name))

		return v, nil
	}

	if s.client == nil {
		client, err := s.newClient(ctx)
		if err != nil {
			return "", err
		}

		s.client = client
	}

	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", newLookupError(name, err)
	}

	var v string
	if out != nil && out.Parameter != nil {
		v = aws.ToString(out.Parameter.Value)
	}

	s.cache[name] = v

	s.logger.DebugContext(ctx, "parameter retrieved", slog.String("name", name))

	return v, nil
}

func (s *SSM) newClient(ctx context.Context) (Client, error) {
	var opts []func(*config.LoadOptions) error

	if s.region != "" {
		opts = append(opts, config.WithRegion(s.region))
	}

	if s.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, ErrConfig.Wrap(err)
	}

	s.logger.DebugContext(ctx, "parameter store client created",
		slog.String("region", cfg.Region),
	)

	return ssm.NewFromConfig(cfg), nil
}

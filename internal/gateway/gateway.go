// Package gateway turns a chat turn into a generative-language API call and
// maps the outcome back into a reply string.
package gateway

import (
	"context"
	"strings"
	"time"

	"eshika-chat/internal/domain"
	"eshika-chat/pkg/logger"
)

// Generator performs the actual model call.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

type Config struct {
	System       SystemConfig
	DefaultModel string
	Timeout      time.Duration
}

type Gateway struct {
	gen Generator
	cfg Config
	log *logger.Logger
}

func New(gen Generator, cfg Config, l *logger.Logger) *Gateway {
	if gen == nil {
		gen = MissingKeyGenerator()
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "gemini-flash-latest"
	}
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Gateway{gen: gen, cfg: cfg, log: l}
}

// Turn is one user message to answer.
type Turn struct {
	Conversation []domain.Message
	Message      string
	Language     string
	Model        string
	Image        *Image
}

// Reply answers a turn. Image-trigger messages short-circuit to a templated
// image link without calling the model. Failures come back as *GatewayError.
func (g *Gateway) Reply(ctx context.Context, t Turn) (string, error) {
	if prompt, ok := ImagePrompt(t.Message); ok {
		return ImageReply(prompt), nil
	}

	req, err := BuildPrompt(g.cfg.System, t.Conversation, t.Message, t.Language, t.Image)
	if err != nil {
		return "", err
	}
	req.Model = g.modelName(t.Model)

	return g.GenerateReply(ctx, req)
}

// GenerateReply calls the generator within the configured bounded wait.
func (g *Gateway) GenerateReply(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		req.Model = g.cfg.DefaultModel
	}
	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := g.gen.Generate(ctx, req)
	if err != nil {
		mapped := MapError(err, req.Model)
		g.log.WithContext(ctx).Sugar().Errorf("generation failed model=%s status=%d after %s: %v",
			req.Model, mapped.Status, time.Since(start), err)
		return "", mapped
	}
	g.log.WithContext(ctx).Sugar().Debugf("generation ok model=%s in %s", req.Model, time.Since(start))

	if strings.TrimSpace(text) == "" {
		return replyEmpty, nil
	}
	return text, nil
}

func (g *Gateway) modelName(requested string) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = g.cfg.DefaultModel
	}
	return strings.TrimPrefix(name, "models/")
}

// MissingKeyGenerator fails every call with a configuration error. Used when
// no API key is configured.
func MissingKeyGenerator() Generator {
	return GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		return "", &UpstreamError{Code: 500, Status: "UNCONFIGURED", Message: "API key not configured"}
	})
}

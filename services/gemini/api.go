package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	geminiApiKeyFlag            = "gemini-api-key"
	geminiApiSecureFlag         = "gemini-api-secure"
	geminiApiHostFlag           = "gemini-api-host"
	geminiApiPortFlag           = "gemini-api-port"
	geminiModelFlag             = "gemini-model"
	geminiFallbackModelFlag     = "gemini-fallback-model"
	defaultGeminiModel          = "gemini-2.0-flash"
	defaultGeminiFallbackModels = "gemini-2.0-flash-lite,gemini-1.5-flash"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   geminiApiHostFlag,
			Usage:  "gemini api host",
			EnvVar: "GEMINI_API_HOST",
			Value:  "generativelanguage.googleapis.com",
		},
		cli.IntFlag{
			Name:   geminiApiPortFlag,
			Usage:  "gemini api port",
			EnvVar: "GEMINI_API_PORT",
			Value:  443,
		},
		cli.BoolTFlag{
			Name:   geminiApiSecureFlag,
			Usage:  "gemini api secure (https)",
			EnvVar: "GEMINI_API_SECURE",
		},
		cli.StringFlag{
			Name:   geminiApiKeyFlag,
			Usage:  "gemini api key",
			Value:  "",
			EnvVar: "GEMINI_API_KEY",
		},
		cli.StringFlag{
			Name:   geminiModelFlag,
			Usage:  "primary gemini model",
			Value:  defaultGeminiModel,
			EnvVar: "GEMINI_MODEL",
		},
		cli.StringFlag{
			Name:   geminiFallbackModelFlag,
			Usage:  "comma-separated fallback gemini models tried in order",
			Value:  defaultGeminiFallbackModels,
			EnvVar: "GEMINI_FALLBACK_MODELS",
		},
	)
}

// GetModels returns the configured model chain: the primary model first,
// then the fallbacks in configured order.
func GetModels(c *cli.Context) []string {
	models := []string{c.String(geminiModelFlag)}
	for _, m := range strings.Split(c.String(geminiFallbackModelFlag), ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

type Api struct {
	url            string
	cl             *http.Client
	prepareRequest func(r *http.Request) (*http.Request, error)
}

func New(c *cli.Context, cl *http.Client) *Api {
	host := c.String(geminiApiHostFlag)
	port := c.Int(geminiApiPortFlag)
	secure := c.BoolT(geminiApiSecureFlag)
	key := c.String(geminiApiKeyFlag)
	if key == "" {
		return nil
	}
	protocol := "http"
	if secure {
		protocol = "https"
	}
	u := fmt.Sprintf("%v://%v:%v", protocol, host, port)
	prepareRequest := func(r *http.Request) (*http.Request, error) {
		r.Header.Set("x-goog-api-key", key)
		r.Header.Set("Content-Type", "application/json")
		return r, nil
	}
	log.Infof("gemini api endpoint %v", u)
	return &Api{
		url:            u,
		cl:             cl,
		prepareRequest: prepareRequest,
	}
}

type generateContentRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete performs a single text-completion call against the given model.
// It never retries; ordering across models is the caller's concern. An empty
// response text is returned as a success.
func (api *Api) Complete(ctx context.Context, model string, prompt string) (string, error) {
	reqURL := fmt.Sprintf("%s/v1beta/models/%s:generateContent", api.url, model)

	body, err := json.Marshal(&generateContentRequest{
		Contents: []requestContent{
			{Parts: []contentPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create request")
	}

	req, err = api.prepareRequest(req)
	if err != nil {
		return "", errors.Wrap(err, "prepare request")
	}

	resp, err := api.cl.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	var gr generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", errors.Wrap(err, "decode response")
	}

	if resp.StatusCode != http.StatusOK {
		if gr.Error != nil {
			return "", errors.Errorf("gemini error for model %v: %v (%v)", model, gr.Error.Message, gr.Error.Code)
		}
		return "", errors.Errorf("gemini error for model %v: status %v", model, resp.StatusCode)
	}

	if len(gr.Candidates) == 0 {
		return "", errors.Errorf("gemini returned no candidates for model %v", model)
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

package gap

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Gw is the process wide gateway, set up by InitializeToGateway.
var Gw Gateway

const DefaultTimeout = 30 * time.Second

func InitializeToGateway() error {
	endpoint := viper.GetString("gateway.endpoint")
	if len(endpoint) == 0 {
		return fmt.Errorf("gateway endpoint is not configured")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return fmt.Errorf("invalid gateway endpoint: %v", err)
	}

	client := NewClient(endpoint, viper.GetDuration("gateway.timeout"), viper.GetString("gateway.user_agent"))
	log.Info().Str("endpoint", client.endpoint).Dur("timeout", client.timeout).Msg("Gateway client configured.")
	Gw = client
	return nil
}

type Client struct {
	endpoint string
	timeout  time.Duration
	http     *fiber.Client
}

func NewClient(endpoint string, timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		timeout:  timeout,
		http: &fiber.Client{
			UserAgent:   userAgent,
			JSONEncoder: jsoniter.Marshal,
			JSONDecoder: jsoniter.Unmarshal,
		},
	}
}

func (v *Client) url(segments ...string) string {
	escaped := make([]string, len(segments))
	for idx, segment := range segments {
		escaped[idx] = url.PathEscape(segment)
	}
	return v.endpoint + "/" + strings.Join(escaped, "/")
}

// prepare applies the bearer token and a timeout bounded by the context deadline.
func (v *Client) prepare(ctx context.Context, agent *fiber.Agent) *fiber.Agent {
	timeout := v.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if until := time.Until(deadline); until < timeout {
			timeout = until
		}
	}
	agent.Timeout(timeout)
	if token := CredentialFromContext(ctx); len(token) > 0 {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return agent
}

func (v *Client) do(ctx context.Context, agent *fiber.Agent, out any) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return &Error{Code: CodeNetworkError, Cause: err}
	}

	method := string(agent.Request().Header.Method())
	uri := agent.Request().URI().String()
	start := time.Now()

	code, body, errs := v.prepare(ctx, agent).Bytes()
	if len(errs) > 0 {
		log.Debug().Errs("errs", errs).Str("method", method).Str("uri", uri).Msg("Gateway request failed...")
		return &Error{Code: CodeNetworkError, Cause: errs[0]}
	}

	log.Debug().
		Str("method", method).
		Str("uri", uri).
		Int("status", code).
		Dur("elapsed", time.Since(start)).
		Msg("Gateway request settled.")

	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return decodeError(code, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := jsoniter.Unmarshal(body, out); err != nil {
		return &Error{Status: code, Code: CodeUnknown, Cause: fmt.Errorf("failed to parse response body: %v", err)}
	}
	return nil
}

func decodeError(status int, body []byte) *Error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = jsoniter.Unmarshal(body, &payload)

	code := strings.TrimSpace(strings.SplitN(payload.Error.Message, " : ", 2)[0])
	if len(code) == 0 {
		switch status {
		case fiber.StatusUnauthorized, fiber.StatusForbidden:
			code = CodeUnauthorized
		default:
			code = CodeUnknown
		}
	}
	return &Error{Status: status, Code: code}
}

func (v *Client) GetPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := v.do(ctx, v.http.Get(v.url("posts")), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (v *Client) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	var post models.Post
	err := v.do(ctx, v.http.Post(v.url("posts")).JSON(draft), &post)
	return post, err
}

func (v *Client) DeletePost(ctx context.Context, id string) error {
	return v.do(ctx, v.http.Delete(v.url("posts", id)), nil)
}

func (v *Client) LikePost(ctx context.Context, id string) (models.Post, error) {
	var post models.Post
	err := v.do(ctx, v.http.Post(v.url("posts", id, "likes")), &post)
	return post, err
}

func (v *Client) AddComment(ctx context.Context, id, text string) (models.Post, error) {
	var post models.Post
	err := v.do(ctx, v.http.Post(v.url("posts", id, "comments")).JSON(fiber.Map{
		"content": text,
	}), &post)
	return post, err
}

func (v *Client) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	var post models.Post
	err := v.do(ctx, v.http.Patch(v.url("posts", id)).JSON(patch), &post)
	return post, err
}

func (v *Client) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := v.do(ctx, v.http.Get(v.url("users")), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (v *Client) FollowUser(ctx context.Context, id string) error {
	return v.do(ctx, v.http.Post(v.url("users", id, "follow")), nil)
}

func (v *Client) UnfollowUser(ctx context.Context, id string) error {
	return v.do(ctx, v.http.Delete(v.url("users", id, "follow")), nil)
}

func (v *Client) LoginWithEmailPassword(ctx context.Context, email, password string) (models.Identity, error) {
	var identity models.Identity
	err := v.do(ctx, v.http.Post(v.url("auth", "login")).JSON(fiber.Map{
		"email":    email,
		"password": password,
	}), &identity)
	return identity, err
}

func (v *Client) Register(ctx context.Context, form models.Registration) (models.Identity, error) {
	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("email", form.Email)
	args.Set("password", form.Password)
	args.Set("firstName", form.FirstName)
	args.Set("lastName", form.LastName)

	agent := v.http.Post(v.url("auth", "register"))
	if form.Photo != nil {
		agent.FileData(&fiber.FormFile{
			Fieldname: "photo",
			Name:      form.Photo.Filename,
			Content:   form.Photo.Content,
		})
	}
	agent.MultipartForm(args)

	var identity models.Identity
	err := v.do(ctx, agent, &identity)
	return identity, err
}

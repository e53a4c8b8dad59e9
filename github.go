package stars

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// DefaultAPIBaseURL is the GitHub REST API root the fetcher queries.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultProfileBaseURL is prefixed to an identifier to build the link
	// reported for a successful lookup.
	DefaultProfileBaseURL = "https://github.com"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "GitHub-Stars-Fetcher"

	// DefaultDelay is the pause taken before every request, the first one
	// included.
	DefaultDelay = 700 * time.Millisecond
)

var errMissingCount = errors.New("missing field `stargazers_count`")

// Fetcher looks up the stargazers count of repositories one at a time,
// pausing before each request so as to stay well under GitHub's anonymous
// rate limit.
type Fetcher struct {
	apiBaseURL     string
	profileBaseURL string
	userAgent      string
	token          string
	delay          time.Duration

	client   *http.Client
	progress io.Writer
	log      *zap.SugaredLogger
	sleep    func(context.Context, time.Duration) error
}

// NewFetcher returns a Fetcher that talks to the public GitHub API. The
// returned error is the only fatal failure the pipeline has: it is reported
// when the options describe a client that cannot be built.
func NewFetcher(options ...func(*Fetcher)) (*Fetcher, error) {
	f := &Fetcher{
		apiBaseURL:     DefaultAPIBaseURL,
		profileBaseURL: DefaultProfileBaseURL,
		userAgent:      DefaultUserAgent,
		delay:          DefaultDelay,
		client:         initHTTPClient(0),
		progress:       io.Discard,
		log:            zap.NewNop().Sugar(),
		sleep:          sleepContext,
	}
	for _, o := range options {
		o(f)
	}

	if _, err := url.Parse(f.apiBaseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid API base URL %q", f.apiBaseURL)
	}
	f.apiBaseURL = strings.TrimSuffix(f.apiBaseURL, "/")
	f.profileBaseURL = strings.TrimSuffix(f.profileBaseURL, "/")
	if !validHeaderValue(f.userAgent) {
		return nil, errors.Errorf("invalid User-Agent header value %q", f.userAgent)
	}
	if f.delay < 0 {
		return nil, errors.New("request delay must not be negative")
	}
	if f.token != "" {
		f.client = &http.Client{
			Timeout: f.client.Timeout,
			Transport: &oauth2.Transport{
				Base:   f.client.Transport,
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: f.token}),
			},
		}
	}
	return f, nil
}

// WithLogger sets the *zap.SugaredLogger the Fetcher reports each lookup to.
// Without it a no-op logger is used.
func WithLogger(logger *zap.SugaredLogger) func(*Fetcher) {
	return func(f *Fetcher) {
		f.log = logger
	}
}

// WithProgress sets where the "Fetching data for" notices are written.
func WithProgress(w io.Writer) func(*Fetcher) {
	return func(f *Fetcher) {
		f.progress = w
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) func(*Fetcher) {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithAPIBaseURL points the Fetcher at another API root, such as a GitHub
// Enterprise host or a test server.
func WithAPIBaseURL(baseURL string) func(*Fetcher) {
	return func(f *Fetcher) {
		f.apiBaseURL = baseURL
	}
}

// WithProfileBaseURL changes the host used for the links of successful
// lookups.
func WithProfileBaseURL(baseURL string) func(*Fetcher) {
	return func(f *Fetcher) {
		f.profileBaseURL = baseURL
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) func(*Fetcher) {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithDelay overrides the pause taken before each request.
func WithDelay(d time.Duration) func(*Fetcher) {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithToken makes the Fetcher send token as a bearer credential, which
// raises the rate limit GitHub applies.
func WithToken(token string) func(*Fetcher) {
	return func(f *Fetcher) {
		f.token = token
	}
}

// FetchAll looks up every repository in order, one at a time. The returned
// slice always has one Result per repository: failures are recorded, never
// dropped.
func (f *Fetcher) FetchAll(ctx context.Context, repos []string) []Result {
	results := make([]Result, 0, len(repos))
	for _, repo := range repos {
		results = append(results, f.Fetch(ctx, repo))
	}
	return results
}

// Fetch waits out the request delay, announces the repository on the
// progress writer and fetches its stargazers count. Any failure is carried
// in the returned Result.
func (f *Fetcher) Fetch(ctx context.Context, repo string) Result {
	if err := f.sleep(ctx, f.delay); err != nil {
		return f.failed(repo, &RequestError{Err: err})
	}
	fmt.Fprintf(f.progress, "Fetching data for: %s\n", repo)

	count, err := f.fetchStargazersCount(ctx, repo)
	if err != nil {
		return f.failed(repo, err)
	}
	f.log.Debugw("fetched stargazers count",
		"repo", repo,
		"stargazers_count", count)
	return Result{
		Repository: repo,
		Stars:      count,
		URL:        fmt.Sprintf("%s/%s", f.profileBaseURL, repo),
	}
}

func (f *Fetcher) failed(repo string, err error) Result {
	f.log.Warnw("unable to fetch stargazers count",
		"repo", repo,
		"err", err.Error())
	return Result{Repository: repo, Err: err}
}

// fetchStargazersCount issues the single GET for repo. Errors are always one
// of *RequestError, *HTTPError or *ParseError.
func (f *Fetcher) fetchStargazersCount(ctx context.Context, repo string) (uint32, error) {
	endpoint := fmt.Sprintf("%s/repos/%s", f.apiBaseURL, repo)
	f.log.Debugw("requesting repository", "repo", repo, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &RequestError{Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	count, err := stargazersFromJSON(resp.Body)
	if err != nil {
		return 0, &ParseError{Err: err}
	}
	return count, nil
}

func stargazersFromJSON(r io.Reader) (uint32, error) {
	var apiResponse struct {
		StargazersCount *uint32 `json:"stargazers_count"`
	}
	if err := decodeResponse(r, &apiResponse); err != nil {
		return 0, err
	}
	if apiResponse.StargazersCount == nil {
		return 0, errMissingCount
	}
	return *apiResponse.StargazersCount, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

const (
	ytPlayerURL      = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion = "20.10.38"
	ytAndroidUA      = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"
)

type innertubeReq struct {
	VideoID                    string               `json:"videoId"`
	Context                    innertubeCtx         `json:"context"`
	RacyCheckOk                bool                 `json:"racyCheckOk"`
	ContentCheckOk             bool                 `json:"contentCheckOk"`
	ServiceIntegrityDimensions *integrityDimensions `json:"serviceIntegrityDimensions,omitempty"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	VisitorData       string `json:"visitorData,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type integrityDimensions struct {
	PoToken string `json:"poToken"`
}

type innertube struct {
	client   *http.Client
	endpoint string
	cred     engine.Credential
}

// Innertube returns a source that asks YouTube's own player API for the
// video, posing as the Android app. Cookies, PoToken and visitor data from
// cred are forwarded when set.
func Innertube(client *http.Client, cred engine.Credential, timeout time.Duration) engine.Source {
	return newInnertube(client, cred, ytPlayerURL).source(timeout)
}

func newInnertube(client *http.Client, cred engine.Credential, endpoint string) *innertube {
	return &innertube{client: cred.Client(client), endpoint: endpoint, cred: cred}
}

func (it *innertube) source(timeout time.Duration) engine.Source {
	return engine.Source{
		Name:    engine.SourceInnertube,
		Timeout: timeout,
		Audio:   engine.AudioByDirectURL,
		Fetch:   it.fetch,
	}
}

func (it *innertube) request(videoID string) innertubeReq {
	r := innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				VisitorData:       it.cred.VisitorData,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}
	if it.cred.POToken != "" {
		r.ServiceIntegrityDimensions = &integrityDimensions{PoToken: it.cred.POToken}
	}
	return r
}

func (it *innertube) fetch(ctx context.Context, videoID string) (*engine.Payload, error) {
	body, err := json.Marshal(it.request(videoID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, it.endpoint+"?prettyPrint=false", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)
	if it.cred.VisitorData != "" {
		req.Header.Set("X-Goog-Visitor-Id", it.cred.VisitorData)
	}

	resp, err := it.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxJSONBody))
	if err != nil {
		return nil, fmt.Errorf("read player: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var pr playerResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return pr.payload(videoID)
}

package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"jarvis/internal/failure"
)

const DefaultBaseURL = "http://api.openweathermap.org/data/2.5/weather"

type Report struct {
	Description  string
	TemperatureC float64
	HumidityPct  float64
	WindSpeed    float64
}

// Message renders the report as one spoken paragraph.
func (r Report) Message(city string) string {
	return fmt.Sprintf("Current weather in %s is %s. Temperature %s°C. Humidity %s%%. Wind %s m/s.",
		city, r.Description, num(r.TemperatureC), num(r.HumidityPct), num(r.WindSpeed))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		HTTPClient: httpClient,
		BaseURL:    DefaultBaseURL,
	}
}

// Current fetches the current conditions for city in metric units.
func (c *Client) Current(ctx context.Context, city, apiKey string) (Report, error) {
	if apiKey == "" {
		return Report{}, fmt.Errorf("openweather api key: %w", failure.ErrNotConfigured)
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("get weather: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Report{}, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Report{}, fmt.Errorf("openweather: status=%d body=%s", resp.StatusCode, string(body))
	}
	if !gjson.ValidBytes(body) {
		return Report{}, fmt.Errorf("openweather: invalid json")
	}

	data := gjson.ParseBytes(body)
	desc := data.Get("weather.0.description").String()
	if desc == "" {
		desc = "unknown"
	}

	return Report{
		Description:  desc,
		TemperatureC: data.Get("main.temp").Float(),
		HumidityPct:  data.Get("main.humidity").Float(),
		WindSpeed:    data.Get("wind.speed").Float(),
	}, nil
}

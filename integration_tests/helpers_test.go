package integrationtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/alicebob/miniredis/v2"
)

const testAPIKey = "test_api_key"

var miniRedisMock *miniredis.Miniredis

func createMockRedisServer() {
	var err error
	miniRedisMock, err = miniredis.Run()
	if err != nil {
		panic(err)
	}
}

type city struct {
	name     string
	country  string
	lat, lon float64
	temp     float64
	timezone string
}

var (
	kolkata = city{name: "Kolkata", country: "IN", lat: 22.5697, lon: 88.3697, temp: 31.5, timezone: "Asia/Kolkata"}
	paris   = city{name: "Paris", country: "FR", lat: 48.8566, lon: 2.3522, temp: 14, timezone: "Europe/Paris"}
)

// providerStub plays both OpenWeatherMap and Nominatim.
type providerStub struct {
	mu       sync.Mutex
	requests map[string]int
}

func (p *providerStub) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[key]
}

func (p *providerStub) record(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.requests == nil {
		p.requests = map[string]int{}
	}
	p.requests[key]++
}

func (p *providerStub) lookup(r *http.Request) (city, bool) {
	q := r.URL.Query()
	if q.Get("lat") != "" {
		if strings.HasPrefix(q.Get("lat"), "48.8") {
			return paris, true
		}
		return kolkata, true
	}
	switch strings.ToLower(q.Get("q")) {
	case "kolkata":
		return kolkata, true
	case "paris":
		return paris, true
	}
	return city{}, false
}

func (p *providerStub) server() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/search" {
			p.record("search")
			writeNominatim(w, r.URL.Query().Get("q"))
			return
		}

		if r.URL.Query().Get("appid") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			return
		}
		c, ok := p.lookup(r)
		units := r.URL.Query().Get("units")
		switch r.URL.Path {
		case "/weather":
			p.record("weather:" + units)
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
				return
			}
			_, _ = w.Write([]byte(currentBody(c, units)))
		case "/onecall":
			p.record("onecall:" + units)
			_, _ = w.Write([]byte(oneCallBody(c, units)))
		default:
			http.NotFound(w, r)
		}
	}))
}

func convert(temp float64, units string) float64 {
	if units == "imperial" {
		return temp*9/5 + 32
	}
	return temp
}

func currentBody(c city, units string) string {
	body := map[string]interface{}{
		"name":  c.name,
		"dt":    1717133400,
		"coord": map[string]float64{"lat": c.lat, "lon": c.lon},
		"main": map[string]interface{}{
			"temp": convert(c.temp, units), "feels_like": convert(c.temp+1, units),
			"temp_min": convert(c.temp-1, units), "temp_max": convert(c.temp+1, units), "humidity": 70,
		},
		"wind":    map[string]float64{"speed": 4.1},
		"sys":     map[string]interface{}{"country": c.country, "sunrise": 1717111800, "sunset": 1717160400},
		"weather": []map[string]interface{}{{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"}},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func oneCallBody(c city, units string) string {
	var hourly, daily []map[string]interface{}
	for i := 0; i < 6; i++ {
		hourly = append(hourly, map[string]interface{}{
			"dt":      1717135200 + i*3600,
			"temp":    convert(c.temp, units),
			"weather": []map[string]string{{"icon": "01d"}},
		})
	}
	for i := 0; i < 5; i++ {
		daily = append(daily, map[string]interface{}{
			"dt":      1717135200 + i*86400,
			"temp":    map[string]float64{"day": convert(c.temp, units)},
			"weather": []map[string]string{{"icon": "02d"}},
		})
	}
	b, _ := json.Marshal(map[string]interface{}{"timezone": c.timezone, "hourly": hourly, "daily": daily})
	return string(b)
}

func writeNominatim(w http.ResponseWriter, q string) {
	if !strings.HasPrefix("paris", strings.ToLower(q)) {
		_, _ = w.Write([]byte(`[]`))
		return
	}
	fmt.Fprintf(w, `[
		{"display_name": "Paris, Île-de-France, France", "lat": "%v", "lon": "%v"},
		{"display_name": "Parma, Emilia-Romagna, Italy", "lat": "44.8015", "lon": "10.3279"}
	]`, paris.lat, paris.lon)
}

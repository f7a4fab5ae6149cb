// Package dashboard owns the interactive state of the weather dashboard: the
// search box, the active location query, the unit system, the theme flag and
// the latest forecast.
//
// All state belongs to the goroutine running Run. Public methods send a command
// to that goroutine and wait until it has been applied. Provider calls and the
// geolocation lookup run on their own goroutines and post their results back,
// tagged with the sequence number issued when the request started; a result
// whose sequence number is no longer the newest is dropped.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/notify"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
	"github.com/fakhrymubarak/weather-dashboard/internal/storage"
	"go.uber.org/zap"
)

var (
	ErrNoSuchSuggestion   = errors.New("no such suggestion")
	ErrNoSuchNotification = errors.New("no such notification")
	ErrStopped            = errors.New("dashboard is not running")
	ErrAlreadyRunning     = errors.New("dashboard is already running")
)

// FavoritesStore is the persisted favorites set.
type FavoritesStore interface {
	Load(ctx context.Context) error
	List() []string
	Contains(city string) bool
	Toggle(ctx context.Context, city string) (bool, error)
}

// ThemeStore is the persisted dark-mode flag.
type ThemeStore interface {
	Load(ctx context.Context) (bool, error)
	Toggle(ctx context.Context) (bool, error)
}

// Notifier receives user-facing toasts.
type Notifier interface {
	Success(text string) model.Notification
	Warning(text string) model.Notification
	Error(text string) model.Notification
	Active() []model.Notification
	Dismiss(id string) bool
}

type Options struct {
	Weather     service.WeatherServiceInterface
	Suggestions service.SuggestionServiceInterface
	Favorites   FavoritesStore
	Theme       ThemeStore
	Notifier    Notifier
	// Locator is used by Geolocate when the caller passes none.
	Locator geolocation.Locator
	Logger  *zap.SugaredLogger

	InitialQuery model.LocationQuery
	InitialUnits model.UnitSystem
}

type Dashboard struct {
	weather     service.WeatherServiceInterface
	suggestions service.SuggestionServiceInterface
	favorites   FavoritesStore
	theme       ThemeStore
	notifier    Notifier
	locator     geolocation.Locator
	logger      *zap.SugaredLogger

	cmds    chan func()
	done    chan struct{}
	started atomic.Bool
	wg      sync.WaitGroup

	// runCtx parents every provider request; set once before the loop starts.
	runCtx context.Context
	st     state
}

// state is only touched from the Run goroutine.
type state struct {
	query    model.LocationQuery
	units    model.UnitSystem
	dark     bool
	forecast *model.ForecastRecord
	loading  bool
	lastErr  string

	text        string
	phase       SearchPhase
	suggestions []model.SuggestionEntry

	suggestSeq    uint64
	cancelSuggest context.CancelFunc
	weatherSeq    uint64
	cancelWeather context.CancelFunc
	locateSeq     uint64
}

func New(opts Options) *Dashboard {
	d := &Dashboard{
		weather:     opts.Weather,
		suggestions: opts.Suggestions,
		favorites:   opts.Favorites,
		theme:       opts.Theme,
		notifier:    opts.Notifier,
		locator:     opts.Locator,
		logger:      opts.Logger,
		cmds:        make(chan func()),
		done:        make(chan struct{}),
	}
	if d.logger == nil {
		d.logger = config.GetLogger()
	}
	if d.notifier == nil {
		d.notifier = notify.NewCenter(config.GetNotificationTTL())
	}
	if d.locator == nil {
		d.locator = geolocation.Unavailable
	}
	if d.favorites == nil {
		d.favorites = storage.NewFavoritesStore(storage.NewMemoryStore())
	}
	if d.theme == nil {
		d.theme = storage.NewThemeStore(storage.NewMemoryStore())
	}
	if d.weather == nil {
		d.weather = service.NewWeatherService()
	}
	if d.suggestions == nil {
		d.suggestions = service.NewSuggestionService(d.favorites)
	}

	d.st.query = opts.InitialQuery
	if d.st.query.Validate() != nil {
		d.st.query = model.ByCity(config.GetDefaultCity())
	}
	d.st.units = opts.InitialUnits
	if d.st.units == "" {
		d.st.units = model.Metric
	}
	d.st.phase = PhaseIdle
	return d
}

// Run restores the persisted theme and favorites, fetches the initial forecast
// and then processes commands until ctx is cancelled.
func (d *Dashboard) Run(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	d.runCtx = ctx

	defer func() {
		d.cancelSuggestion()
		d.cancelForecast()
		close(d.done)
		d.wg.Wait()
	}()

	d.mount(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Infow("Dashboard stopped", "reason", ctx.Err())
			return nil
		case cmd := <-d.cmds:
			cmd()
		}
	}
}

func (d *Dashboard) mount(ctx context.Context) {
	dark, err := d.theme.Load(ctx)
	if err != nil {
		d.logger.Warnw("Could not restore theme, using light mode", "error", err)
	}
	d.st.dark = dark

	if err := d.favorites.Load(ctx); err != nil {
		d.logger.Warnw("Could not restore favorites", "error", err)
	}

	d.logger.Infow("Dashboard started", "query", d.st.query.String(), "units", d.st.units, "darkMode", dark)
	d.refetch()
}

// do runs fn on the loop goroutine and returns its error.
func (d *Dashboard) do(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)
	select {
	case d.cmds <- func() { errc <- fn() }:
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-errc
}

// post hands a result back to the loop. It is dropped once the loop has exited.
func (d *Dashboard) post(fn func()) {
	select {
	case d.cmds <- fn:
	case <-d.done:
	}
}

func (d *Dashboard) spawn(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn()
	}()
}

package virtual

import "reflect"

// Option configures a Virtualizer.
type Option func(*options)

// options holds all engine configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for engine options.
// All options (built-in and custom) use this system for consistency.
//
// Example:
//
//	// Define option keys (built-in ones are already defined below)
//	var OptRowGap = virtual.NewOptKey[float64]("rowGap", 0)
//
//	// Set options
//	v := virtual.New(virtual.WithOpt(OptRowGap, 4))
//
//	// Read in a host or strategy
//	gap := virtual.Lookup(v, OptRowGap)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set, or if it was set to nil
// (a nil interface, func, pointer or map counts as unset).
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok || isNil(v) {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set to a non-nil value.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	v, ok := o.extensions[key.name]
	return ok && !isNil(v)
}

// applyOptions applies all options and returns the configuration.
func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ApplyAndGet applies options and returns a single value.
func ApplyAndGet[T any](opts []Option, key OptKey[T]) T {
	return GetOpt(applyOptions(opts), key)
}

// ApplyAndCheck returns the option value and whether it was explicitly set.
func ApplyAndCheck[T any](opts []Option, key OptKey[T]) (T, bool) {
	o := applyOptions(opts)
	return GetOpt(o, key), HasOpt(o, key)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

// --- Required by the host ---
var (
	OptCount          = NewOptKey("count", 0)
	OptScrollElement  = NewOptKey[func() ScrollElement]("scrollElement", nil)
	OptRectObserver   = NewOptKey[RectObserver]("observeElementRect", nil)
	OptOffsetObserver = NewOptKey[OffsetObserver]("observeElementOffset", nil)
	OptScroller       = NewOptKey[Scroller]("scrollToFn", nil)
)

// --- Strategies ---
var (
	OptEstimator      = NewOptKey[Estimator]("estimateSize", FixedSize(50))
	OptKeyExtractor   = NewOptKey("keyExtractor", IndexKey)
	OptRangeExtractor = NewOptKey("rangeExtractor", DefaultRangeExtractor)
	OptMeasurer       = NewOptKey("measureElement", BoundingRectMeasurer)
)

// --- Geometry ---
var (
	OptOverscan      = NewOptKey("overscan", 1)
	OptHorizontal    = NewOptKey("horizontal", false)
	OptPaddingStart  = NewOptKey[float64]("paddingStart", 0)
	OptPaddingEnd    = NewOptKey[float64]("paddingEnd", 0)
	OptInitialOffset = NewOptKey[float64]("initialOffset", 0)
	OptInitialRect   = NewOptKey("initialRect", Rect{})
)

// --- Behavior ---
var (
	OptSmoothScroll = NewOptKey("enableSmoothScroll", false)
	OptOnChange     = NewOptKey[func(*Virtualizer)]("onChange", nil)
	OptDebug        = NewOptKey("debug", false)
)

// Config is the resolved option snapshot with every default applied.
type Config struct {
	Count              int
	ScrollElement      func() ScrollElement
	RectObserver       RectObserver
	OffsetObserver     OffsetObserver
	Scroller           Scroller
	Estimator          Estimator
	KeyExtractor       KeyExtractor
	RangeExtractor     RangeExtractor
	Measurer           ElementMeasurer
	Overscan           int
	Horizontal         bool
	PaddingStart       float64
	PaddingEnd         float64
	InitialOffset      float64
	InitialRect        Rect
	EnableSmoothScroll bool
	OnChange           func(*Virtualizer)
	Debug              bool
}

// resolve reads every built-in key, applying defaults and clamping
// counts that can't be negative.
func resolve(o options) Config {
	return Config{
		Count:              max(GetOpt(o, OptCount), 0),
		ScrollElement:      GetOpt(o, OptScrollElement),
		RectObserver:       GetOpt(o, OptRectObserver),
		OffsetObserver:     GetOpt(o, OptOffsetObserver),
		Scroller:           GetOpt(o, OptScroller),
		Estimator:          GetOpt(o, OptEstimator),
		KeyExtractor:       GetOpt(o, OptKeyExtractor),
		RangeExtractor:     GetOpt(o, OptRangeExtractor),
		Measurer:           GetOpt(o, OptMeasurer),
		Overscan:           max(GetOpt(o, OptOverscan), 0),
		Horizontal:         GetOpt(o, OptHorizontal),
		PaddingStart:       GetOpt(o, OptPaddingStart),
		PaddingEnd:         GetOpt(o, OptPaddingEnd),
		InitialOffset:      GetOpt(o, OptInitialOffset),
		InitialRect:        GetOpt(o, OptInitialRect),
		EnableSmoothScroll: GetOpt(o, OptSmoothScroll),
		OnChange:           GetOpt(o, OptOnChange),
		Debug:              GetOpt(o, OptDebug),
	}
}

// =============================================================================
// Convenience Option Functions (wrap WithOpt for common cases)
// =============================================================================

// WithCount sets the number of items in the list.
func WithCount(n int) Option { return WithOpt(OptCount, n) }

// WithScrollElement sets the function returning the current scroll container.
func WithScrollElement(fn func() ScrollElement) Option { return WithOpt(OptScrollElement, fn) }

// WithRectObserver sets the viewport size observer.
func WithRectObserver(o RectObserver) Option { return WithOpt(OptRectObserver, o) }

// WithOffsetObserver sets the scroll offset observer.
func WithOffsetObserver(o OffsetObserver) Option { return WithOpt(OptOffsetObserver, o) }

// WithScroller sets the primitive that actually scrolls the container.
func WithScroller(s Scroller) Option { return WithOpt(OptScroller, s) }

// WithEstimator sets the size estimation strategy.
func WithEstimator(e Estimator) Option { return WithOpt(OptEstimator, e) }

// WithEstimateSize sets the size estimation function.
func WithEstimateSize(fn func(index int) float64) Option {
	if fn == nil {
		return WithOpt[Estimator](OptEstimator, nil)
	}
	return WithOpt[Estimator](OptEstimator, EstimatorFunc(fn))
}

// WithKeyExtractor sets the index-to-key mapping.
func WithKeyExtractor(k KeyExtractor) Option { return WithOpt(OptKeyExtractor, k) }

// WithRangeExtractor replaces the overscan window with a custom extractor.
func WithRangeExtractor(r RangeExtractor) Option { return WithOpt(OptRangeExtractor, r) }

// WithMeasurer sets how rendered elements are measured.
func WithMeasurer(m ElementMeasurer) Option { return WithOpt(OptMeasurer, m) }

// WithOverscan sets how many items are rendered beyond each edge of the viewport.
func WithOverscan(n int) Option { return WithOpt(OptOverscan, n) }

// Horizontal switches the scroll axis to x (width/left).
func Horizontal() Option { return WithOpt(OptHorizontal, true) }

// WithPadding sets the space before the first item and after the last one.
func WithPadding(start, end float64) Option {
	return func(o *options) {
		WithOpt(OptPaddingStart, start)(o)
		WithOpt(OptPaddingEnd, end)(o)
	}
}

// WithInitialOffset sets the scroll offset used before the offset observer reports.
func WithInitialOffset(offset float64) Option { return WithOpt(OptInitialOffset, offset) }

// WithInitialRect sets the viewport size used before the rect observer reports.
func WithInitialRect(r Rect) Option { return WithOpt(OptInitialRect, r) }

// EnableSmoothScroll lets ScrollToOffset and ScrollToIndex ask for smooth scrolling.
// Scroll corrections from remeasurement are never smooth.
func EnableSmoothScroll() Option { return WithOpt(OptSmoothScroll, true) }

// WithOnChange sets the change notification hook.
func WithOnChange(fn func(*Virtualizer)) Option { return WithOpt(OptOnChange, fn) }

// WithDebug enables per-memo recompute logging and correction logging.
func WithDebug(debug bool) Option { return WithOpt(OptDebug, debug) }

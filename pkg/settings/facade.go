package settings

import (
	"context"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
)

// Prompter asks the user for a missing value.
type Prompter interface {
	Input(ctx context.Context, prompt string) (string, error)
	// Password reads a value without echoing it.
	Password(ctx context.Context, prompt string) (string, error)
}

// Option configures a Facade.
type Option func(*Facade)

// WithStatusWriter sets where human-readable status lines are printed.
func WithStatusWriter(w io.Writer) Option {
	return func(f *Facade) {
		f.out = w
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(f *Facade) {
		f.logger = l
	}
}

// WithStoreOnFile controls whether collected values are persisted. When
// disabled every persist removes the stored record instead.
func WithStoreOnFile(enabled bool) Option {
	return func(f *Facade) {
		f.storeOnFile = enabled
	}
}

// Facade implements read-or-prompt-then-persist for every credential field.
type Facade struct {
	store       Store
	prompter    Prompter
	out         io.Writer
	logger      loggerpkg.Logger
	storeOnFile bool
}

// New builds a Facade over store. prompter may be nil when no interactive
// input is available; blank fields then stay blank.
func New(store Store, prompter Prompter, opts ...Option) *Facade {
	f := &Facade{
		store:       store,
		prompter:    prompter,
		out:         io.Discard,
		logger:      loggerpkg.NopLogger{},
		storeOnFile: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	if f.out == nil {
		f.out = io.Discard
	}
	if f.logger == nil {
		f.logger = loggerpkg.NopLogger{}
	}
	return f
}

// AskEndpoint collects the Azure OpenAI endpoint.
func (f *Facade) AskEndpoint(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyEndpoint, useAzure)
}

// AskModel collects the Azure deployment name or the OpenAI model name.
func (f *Facade) AskModel(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyModel, useAzure)
}

// AskAPIKey collects the language-model API key.
func (f *Facade) AskAPIKey(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyAPIKey, useAzure)
}

// AskOrg collects the OpenAI organization id.
func (f *Facade) AskOrg(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyOrg, useAzure)
}

// AskWeatherAPIKey collects the tomorrow.io API key.
func (f *Facade) AskWeatherAPIKey(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyWeatherAPIKey, useAzure)
}

// AskAmadeusClientID collects the Amadeus OAuth client id.
func (f *Facade) AskAmadeusClientID(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyAmadeusClientID, useAzure)
}

// AskAmadeusSecret collects the Amadeus OAuth client secret.
func (f *Facade) AskAmadeusSecret(ctx context.Context, useAzure bool) (string, error) {
	return f.ask(ctx, KeyAmadeusSecret, useAzure)
}

// Setup runs every field in table order and returns the resulting record.
func (f *Facade) Setup(ctx context.Context, useAzure bool) (Record, error) {
	rec := f.read(useAzure)
	for _, fld := range fieldTable {
		var err error
		if rec, err = f.fill(ctx, fld, rec); err != nil {
			return Record{}, err
		}
	}
	return rec, nil
}

// Current returns the stored record for the given preference without prompting.
func (f *Facade) Current(useAzure bool) Record {
	return f.read(useAzure)
}

// Reset deletes the stored record. It does nothing when none is stored.
func (f *Facade) Reset() {
	if _, err := f.store.Load(); IsNotFound(err) {
		return
	}
	if err := f.store.Delete(); err != nil {
		f.fail("reset", err)
		return
	}
	f.logger.Info("settings deleted", map[string]any{"location": f.store.Location()})
	_, _ = fmt.Fprintln(f.out, "Settings deleted. Run setup again to configure your AI backend.")
}

func (f *Facade) ask(ctx context.Context, key string, useAzure bool) (string, error) {
	fld, ok := lookupField(key)
	if !ok {
		return "", fmt.Errorf("unknown settings field %q", key)
	}

	rec, err := f.fill(ctx, fld, f.read(useAzure))
	if err != nil {
		return "", err
	}
	return rec.Get(key), nil
}

// fill prompts for fld when it is blank in rec, persists the result and
// returns the updated record.
func (f *Facade) fill(ctx context.Context, fld field, rec Record) (Record, error) {
	if rec.Missing(fld.key) && fld.appliesTo(rec.Provider) {
		value, err := f.obtain(ctx, fld, rec.Provider)
		if err != nil {
			return Record{}, fmt.Errorf("prompt for %s: %w", fld.key, err)
		}
		if fld.key == KeyOrg && isOrgNone(value) {
			value = ""
			rec.OrgSkipped = true
		}
		rec.Set(fld.key, value)
	}

	rec = applyProviderRules(rec)
	f.persist(rec)
	f.report(fld, rec)
	return rec, nil
}

// obtain returns the provider default for fld or asks the prompter.
func (f *Facade) obtain(ctx context.Context, fld field, p Provider) (string, error) {
	if def, ok := fld.defaults[p]; ok {
		return def, nil
	}
	text, ok := fld.prompt[p]
	if !ok || f.prompter == nil {
		return "", nil
	}

	var (
		value string
		err   error
	)
	if fld.secret {
		value, err = f.prompter.Password(ctx, text)
	} else {
		value, err = f.prompter.Input(ctx, text)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// read loads the stored record, falling back to blank values for the
// caller's preference. A stored provider that disagrees with the preference
// invalidates the whole record.
func (f *Facade) read(useAzure bool) Record {
	want := ProviderFor(useAzure)

	rec, err := f.store.Load()
	switch {
	case err == nil:
	case IsNotFound(err):
		return EmptyRecord(useAzure)
	default:
		f.fail("read", err)
		return EmptyRecord(useAzure)
	}

	if rec.Provider != want {
		f.logger.Warn("provider preference changed, resetting settings", map[string]any{
			"stored":    string(rec.Provider),
			"requested": string(want),
		})
		f.Reset()
		return EmptyRecord(useAzure)
	}
	return rec
}

func (f *Facade) persist(rec Record) {
	if !f.storeOnFile {
		if err := f.store.Delete(); err != nil {
			f.fail("delete", err)
		}
		return
	}
	if err := f.store.Save(rec); err != nil {
		f.fail("write", err)
		return
	}
	f.logger.Debug("settings saved", map[string]any{
		"location": f.store.Location(),
		"type":     string(rec.Provider),
		"model":    rec.Model,
	})
}

func (f *Facade) report(fld field, rec Record) {
	text, ok := fld.status[rec.Provider]
	if !ok {
		return
	}
	if rec.Missing(fld.key) {
		_, _ = fmt.Fprintf(f.out, "Settings: ERROR: %s\n", text.empty)
		return
	}
	_, _ = fmt.Fprintf(f.out, "Settings: OK: %s [%s]\n", text.ok, f.store.Location())
}

func (f *Facade) fail(op string, err error) {
	f.logger.Error("settings "+op+" failed", map[string]any{
		"location": f.store.Location(),
		"error":    err.Error(),
	})
	_, _ = fmt.Fprintf(f.out, "Something went wrong: %v\n", err)
}

package database

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns the given instants in order.
func fakeClock(instants ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := instants[i]
		i++
		return t
	}
}

func newBufferedTracer(threshold time.Duration, buf *bytes.Buffer, clock func() time.Time) *slowQueryTracer {
	log := zerolog.New(buf)
	tracer := newSlowQueryTracer(threshold, &log)
	tracer.now = clock
	return tracer
}

func TestSlowQueryTracer_LogsSlowQuery(t *testing.T) {
	var buf bytes.Buffer
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer := newBufferedTracer(100*time.Millisecond, &buf, fakeClock(base, base.Add(250*time.Millisecond)))

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "slow query", line["message"])
	assert.Equal(t, "SELECT 1", line["sql"])
	assert.Equal(t, "warn", line["level"])
}

func TestSlowQueryTracer_IgnoresFastQuery(t *testing.T) {
	var buf bytes.Buffer
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tracer := newBufferedTracer(100*time.Millisecond, &buf, fakeClock(base, base.Add(5*time.Millisecond)))

	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Empty(t, buf.String())
}

func TestSlowQueryTracer_EndWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	tracer := newBufferedTracer(time.Millisecond, &buf, time.Now)

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	assert.Empty(t, buf.String())
}

type recordingTracer struct {
	starts, ends int
}

func (r *recordingTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	r.starts++
	return ctx
}

func (r *recordingTracer) TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData) {
	r.ends++
}

func TestMultiTracer_FansOut(t *testing.T) {
	a, b := &recordingTracer{}, &recordingTracer{}
	mt := &multiTracer{tracers: []pgx.QueryTracer{a, b}}

	ctx := mt.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{})
	mt.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{})

	assert.Equal(t, 1, a.starts)
	assert.Equal(t, 1, b.ends)
}

func TestBuildTracer(t *testing.T) {
	log := zerolog.Nop()

	cfg := &config.Config{Primary: config.Primary{Env: "test"}}
	assert.Nil(t, buildTracer(cfg, &log, nil))

	cfg.Observability = config.DefaultObservabilityConfig()
	assert.IsType(t, &slowQueryTracer{}, buildTracer(cfg, &log, nil))

	cfg.Primary.Env = "local"
	assert.IsType(t, &multiTracer{}, buildTracer(cfg, &log, nil))
}

package rcvmetrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/opencount/rcvcore/rcvmetrics"
)

type MetricsSuite struct {
	suite.Suite
}

func (s *MetricsSuite) TestNoopDoesNothing() {
	r := rcvmetrics.Noop()
	require.NotPanics(s.T(), func() {
		r.ContestTabulated("irv", 3, time.Millisecond)
		r.Aborted("invalid_contest")
	})
}

func (s *MetricsSuite) TestPrometheusRecorderCounters() {
	reg := prometheus.NewRegistry()
	r := rcvmetrics.NewPrometheusRecorder(reg)

	r.ContestTabulated("irv", 2, 5*time.Millisecond)
	r.ContestTabulated("irv", 4, 10*time.Millisecond)
	r.Aborted("round_cap_exceeded")

	families, err := reg.Gather()
	require.NoError(s.T(), err)

	counted := map[string]*dto.MetricFamily{}
	for _, f := range families {
		counted[f.GetName()] = f
	}

	contests := counted["rcvcore_contests_tabulated_total"]
	require.NotNil(s.T(), contests)
	require.Equal(s.T(), 2.0, contests.Metric[0].GetCounter().GetValue())

	aborts := counted["rcvcore_aborts_total"]
	require.NotNil(s.T(), aborts)
	require.Equal(s.T(), 1.0, aborts.Metric[0].GetCounter().GetValue())

	rounds := counted["rcvcore_rounds_per_contest"]
	require.NotNil(s.T(), rounds)
	require.Equal(s.T(), uint64(2), rounds.Metric[0].GetHistogram().GetSampleCount())
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsSuite))
}

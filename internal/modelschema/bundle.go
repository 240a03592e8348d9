// internal/modelschema/bundle.go
package modelschema

// MetricKey names one numeric field of a MetricBundle, spelled as in the record.
type MetricKey string

const (
	MetricF1           MetricKey = "F1"
	MetricDAF          MetricKey = "DAF"
	MetricPrecision    MetricKey = "Precision"
	MetricRecall       MetricKey = "Recall"
	MetricAccuracy     MetricKey = "Accuracy"
	MetricTPR          MetricKey = "TPR"
	MetricFPR          MetricKey = "FPR"
	MetricTNR          MetricKey = "TNR"
	MetricFNR          MetricKey = "FNR"
	MetricTP           MetricKey = "TP"
	MetricFP           MetricKey = "FP"
	MetricTN           MetricKey = "TN"
	MetricFN           MetricKey = "FN"
	MetricMAE          MetricKey = "MAE"
	MetricRMSE         MetricKey = "RMSE"
	MetricR2           MetricKey = "R2"
	MetricMissingPreds MetricKey = "missing_preds"
)

var metricKeys = []MetricKey{
	MetricF1, MetricDAF, MetricPrecision, MetricRecall, MetricAccuracy,
	MetricTPR, MetricFPR, MetricTNR, MetricFNR,
	MetricTP, MetricFP, MetricTN, MetricFN,
	MetricMAE, MetricRMSE, MetricR2, MetricMissingPreds,
}

// MetricKeys returns every numeric bundle field in display order.
func MetricKeys() []MetricKey { return append([]MetricKey(nil), metricKeys...) }

// Value returns the metric named by key, or false when it is absent or the key is unknown.
func (b MetricBundle) Value(key MetricKey) (float64, bool) {
	p := b.field(key)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func (b MetricBundle) field(key MetricKey) *float64 {
	switch key {
	case MetricF1:
		return b.F1
	case MetricDAF:
		return b.DAF
	case MetricPrecision:
		return b.Precision
	case MetricRecall:
		return b.Recall
	case MetricAccuracy:
		return b.Accuracy
	case MetricTPR:
		return b.TPR
	case MetricFPR:
		return b.FPR
	case MetricTNR:
		return b.TNR
	case MetricFNR:
		return b.FNR
	case MetricTP:
		return b.TP
	case MetricFP:
		return b.FP
	case MetricTN:
		return b.TN
	case MetricFN:
		return b.FN
	case MetricMAE:
		return b.MAE
	case MetricRMSE:
		return b.RMSE
	case MetricR2:
		return b.R2
	case MetricMissingPreds:
		return b.MissingPreds
	default:
		return nil
	}
}

// Float is a convenience for building optional metric fields.
func Float(v float64) *float64 { return &v }

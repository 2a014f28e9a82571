package truetype

// HMetric is one glyph's horizontal advance width and left side bearing.
type HMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// VMetric is one glyph's vertical advance height and top side bearing.
type VMetric struct {
	AdvanceHeight  uint16
	TopSideBearing int16
}

// parseHMetrics decodes 'hmtx': numLongMetrics (advanceWidth, lsb) pairs,
// followed by numGlyphs-numLongMetrics trailing lsb-only entries that reuse
// the final pair's advance width.
func parseHMetrics(data []byte, numGlyphs, numLongMetrics int) ([]HMetric, error) {
	r := newReader(data, "hmtx")
	metrics := make([]HMetric, numGlyphs)
	var lastAdvance uint16
	for i := 0; i < numGlyphs; i++ {
		if i < numLongMetrics {
			aw, err := r.u16()
			if err != nil {
				return nil, err
			}
			lsb, err := r.i16()
			if err != nil {
				return nil, err
			}
			lastAdvance = aw
			metrics[i] = HMetric{AdvanceWidth: aw, LeftSideBearing: lsb}
			continue
		}
		lsb, err := r.i16()
		if err != nil {
			return nil, err
		}
		metrics[i] = HMetric{AdvanceWidth: lastAdvance, LeftSideBearing: lsb}
	}
	return metrics, nil
}

// parseVMetrics mirrors parseHMetrics for the vertical metrics table.
func parseVMetrics(data []byte, numGlyphs, numLongMetrics int) ([]VMetric, error) {
	r := newReader(data, "vmtx")
	metrics := make([]VMetric, numGlyphs)
	var lastAdvance uint16
	for i := 0; i < numGlyphs; i++ {
		if i < numLongMetrics {
			ah, err := r.u16()
			if err != nil {
				return nil, err
			}
			tsb, err := r.i16()
			if err != nil {
				return nil, err
			}
			lastAdvance = ah
			metrics[i] = VMetric{AdvanceHeight: ah, TopSideBearing: tsb}
			continue
		}
		tsb, err := r.i16()
		if err != nil {
			return nil, err
		}
		metrics[i] = VMetric{AdvanceHeight: lastAdvance, TopSideBearing: tsb}
	}
	return metrics, nil
}

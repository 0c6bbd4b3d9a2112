package config

import "testing"

func TestDecimationClampedToAtLeastOne(t *testing.T) {
	o := New()
	o.SampleRateHz = 1000
	o.AudioRateHz = 48_000

	if got := o.Decimation(); got != 1 {
		t.Errorf("expected decimation clamped to 1, got %d", got)
	}
}

func TestDecimationExactMultiple(t *testing.T) {
	o := New()
	o.SampleRateHz = 1_920_000
	o.AudioRateHz = 48_000

	if got := o.Decimation(); got != 40 {
		t.Errorf("expected decimation of 40, got %d", got)
	}
	if !o.RateIsExactMultiple() {
		t.Error("expected 1.92MHz/48kHz to be an exact multiple")
	}
	if got := o.EffectiveAudioRateHz(); got != 48_000 {
		t.Errorf("expected effective rate of 48000, got %d", got)
	}
}

func TestDecimationNonExactMultipleWarnsViaRateIsExactMultiple(t *testing.T) {
	o := New()
	o.SampleRateHz = 2_000_000
	o.AudioRateHz = 48_000

	if o.RateIsExactMultiple() {
		t.Error("expected 2MHz/48kHz to not be an exact multiple")
	}
	d := o.Decimation()
	if d != 41 {
		t.Errorf("expected decimation of 41, got %d", d)
	}
	if got := o.EffectiveAudioRateHz(); got == o.AudioRateHz {
		t.Errorf("expected effective rate to drift from nominal audio rate, both were %d", got)
	}
}

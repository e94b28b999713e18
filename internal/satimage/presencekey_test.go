package satimage

import "testing"

func TestParsePresenceKey(t *testing.T) {
	name := "OR_ABI-L2-FDCF-M6_G16_s2021100120000_e2021100123000_c2021100123456.nc"

	key, err := ParsePresenceKey(name)
	if err != nil {
		t.Fatalf("ParsePresenceKey: %v", err)
	}

	if key.Satellite != G16 {
		t.Fatalf("expected satellite G16, got %v", key.Satellite)
	}
	if key.Sector != FDCF {
		t.Fatalf("expected sector FDCF, got %v", key.Sector)
	}
	if key.ScanStart.Year() != 2021 || key.ScanStart.YearDay() != 100 || key.ScanStart.Hour() != 12 {
		t.Fatalf("unexpected scan start: %v", key.ScanStart)
	}
	if key.ScanEnd.Hour() != 12 || key.ScanEnd.Minute() != 30 {
		t.Fatalf("unexpected scan end: %v", key.ScanEnd)
	}
}

func TestParsePresenceKeyMissingTokens(t *testing.T) {
	if _, err := ParsePresenceKey("no_tokens_here.nc"); err == nil {
		t.Fatalf("expected error for a name with no satellite token")
	}
	if _, err := ParsePresenceKey("G16_FDCF_no_timestamps.nc"); err == nil {
		t.Fatalf("expected error for a name with no timestamp token")
	}
}

func TestMatchSectorPrefersMesoVariants(t *testing.T) {
	sector, ok := MatchSector("OR_ABI-L2-FDCM1-M6_G17_s2021100120000.nc")
	if !ok || sector != FDCM1 {
		t.Fatalf("expected FDCM1, got %v, ok=%v", sector, ok)
	}
}

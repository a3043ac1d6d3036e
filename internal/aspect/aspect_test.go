package aspect

import "testing"

func TestClassifyService(t *testing.T) {
	asp := Classify("The customer service was excellent, my order arrived on time")
	if asp != Service {
		t.Errorf("expected Service, got %s", asp)
	}
}

func TestClassifyStaff(t *testing.T) {
	asp := Classify("The waiter was rude and the manager did not care")
	if asp != Staff {
		t.Errorf("expected Staff, got %s", asp)
	}
}

func TestClassifyQuality(t *testing.T) {
	asp := Classify("Delicious food, really fresh ingredients and great taste")
	if asp != Quality {
		t.Errorf("expected Quality, got %s", asp)
	}
}

func TestClassifyPrice(t *testing.T) {
	asp := Classify("Way too expensive for what you get, overpriced menu")
	if asp != Price {
		t.Errorf("expected Price, got %s", asp)
	}
}

func TestClassifyAmbience(t *testing.T) {
	asp := Classify("Lovely atmosphere with cozy seating and nice decor")
	if asp != Ambience {
		t.Errorf("expected Ambience, got %s", asp)
	}
}

func TestClassifyLocation(t *testing.T) {
	asp := Classify("Hard to find parking but the location is central")
	if asp != Location {
		t.Errorf("expected Location, got %s", asp)
	}
}

func TestClassifyWaitTime(t *testing.T) {
	asp := Classify("Had to queue for forty minutes, painfully slow")
	if asp != WaitTime {
		t.Errorf("expected Wait Time, got %s", asp)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	asp := Classify("")
	if asp != General {
		t.Errorf("expected General for empty input, got %s", asp)
	}
}

func TestClassifyDefaultsToGeneral(t *testing.T) {
	asp := Classify("It was okay I guess")
	if asp != General {
		t.Errorf("expected General for vague content, got %s", asp)
	}
}

func TestClassifyExactBeatsSubstring(t *testing.T) {
	// "prices" only substring-matches the Price keyword while "staff" is an
	// exact Staff token, so Staff should win.
	asp := Classify("staff prices")
	if asp != Staff {
		t.Errorf("expected Staff to outrank substring hit, got %s", asp)
	}
}

func TestAllAspects(t *testing.T) {
	aspects := AllAspects()
	if len(aspects) != 8 {
		t.Errorf("expected 8 aspects, got %d", len(aspects))
	}
	if aspects[len(aspects)-1] != General {
		t.Errorf("expected General last, got %s", aspects[len(aspects)-1])
	}
}

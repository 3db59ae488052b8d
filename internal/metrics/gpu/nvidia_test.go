package gpu

import "testing"

func TestParseSMIOutput(t *testing.T) {
	reading, err := parseSMIOutput("45, 62\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if reading.Utilization == nil || *reading.Utilization != 45 {
		t.Fatalf("unexpected utilization: %v", reading.Utilization)
	}
	if reading.Temperature == nil || *reading.Temperature != 62 {
		t.Fatalf("unexpected temperature: %v", reading.Temperature)
	}
}

func TestParseSMIOutputCRLF(t *testing.T) {
	reading, err := parseSMIOutput("45, 62\r\n")
	if err != nil {
		t.Fatalf("parse failed on CRLF output: %v", err)
	}
	if !reading.Usable() {
		t.Fatal("expected usable reading")
	}
}

func TestParseSMIOutputMultiGPUTakesFirstRow(t *testing.T) {
	reading, err := parseSMIOutput("45, 62\n12, 40\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if *reading.Utilization != 45 || *reading.Temperature != 62 {
		t.Fatalf("expected first row, got %v/%v", *reading.Utilization, *reading.Temperature)
	}
}

func TestParseSMIOutputSkipsUnparseableRows(t *testing.T) {
	reading, err := parseSMIOutput("[N/A], [N/A]\n30, 51\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if *reading.Utilization != 30 || *reading.Temperature != 51 {
		t.Fatalf("expected second row, got %v/%v", *reading.Utilization, *reading.Temperature)
	}
}

func TestParseSMIOutputMalformed(t *testing.T) {
	for _, out := range []string{"", "\n\n", "garbage", "45", "util, temp"} {
		if _, err := parseSMIOutput(out); err == nil {
			t.Fatalf("expected error for %q", out)
		}
	}
}

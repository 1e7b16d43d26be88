package utils

import "testing"

func TestGenerateHMAC(t *testing.T) {
	// RFC 4231 test case 2
	got := GenerateHMAC([]byte("what do ya want for nothing?"), "Jefe")
	want := "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	if got != want {
		t.Fatalf("GenerateHMAC = %s, want %s", got, want)
	}
}

func TestVerifyHMAC(t *testing.T) {
	body := []byte(`{"summary":{}}`)
	sig := GenerateHMAC(body, "secret")

	if !VerifyHMAC(body, sig, "secret") {
		t.Fatal("valid signature rejected")
	}
	if VerifyHMAC(body, sig, "other") {
		t.Fatal("signature accepted under the wrong secret")
	}
	if VerifyHMAC([]byte(`{}`), sig, "secret") {
		t.Fatal("signature accepted for a different body")
	}
	if VerifyHMAC(body, "not-hex", "secret") {
		t.Fatal("malformed signature accepted")
	}
}

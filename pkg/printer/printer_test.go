package printer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "", 0)
	require.NoError(t, err)
	assert.False(t, p.IsConnected())
	assert.NoError(t, p.Print([]byte("x")))

	p, err = NewPrinterFromConfig("", "", "", 0)
	require.NoError(t, err)
	assert.NoError(t, p.Print(nil))

	_, err = NewPrinterFromConfig("usb", "", "", 0)
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("network", "", "", 0)
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("bluetooth", "", "", 0)
	assert.Error(t, err)
}

func TestNetworkPrinterTimeoutDefaults(t *testing.T) {
	p := NewNetworkPrinter("10.0.0.1:9100", 0).(*networkPrinter)
	assert.Equal(t, defaultDialTimeout, p.timeout)

	p = NewNetworkPrinter("10.0.0.1:9100", 30*time.Second).(*networkPrinter)
	assert.Equal(t, 30*time.Second, p.timeout)
}

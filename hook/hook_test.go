package hook

import (
	"sync"
	"testing"

	"github.com/arloliu/go-asb/asb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Match(t *testing.T) {
	assert := assert.New(t)

	ping := asb.NewUnicast(0x123, 0x001, 0x05, asb.CmdPing)
	sw := asb.NewMulticast(0x1000, 0x001, asb.Cmd1Bit, 0x01)
	empty := asb.NewBroadcast(0xFFFF, 0x001)

	assert.True(MatchAll.Match(ping))
	assert.True(MatchAll.Match(sw))
	assert.True(MatchAll.Match(empty))

	assert.True(ForCommand(asb.CmdPing).Match(ping))
	assert.False(ForCommand(asb.CmdPing).Match(sw))
	assert.False(ForCommand(0x00).Match(empty), "command filter needs a payload")

	f := Filter{Type: asb.Unicast, Target: 0x123, Port: 0x05, Command: int(asb.CmdPing)}
	assert.True(f.Match(ping))

	f.Port = 0x06
	assert.False(f.Match(ping))

	f = Filter{Type: asb.Multicast, Target: AnyTarget, Port: AnyPort, Command: AnyCommand}
	assert.False(f.Match(ping))
	assert.True(f.Match(sw))

	f = Filter{Type: AnyType, Target: 0x1000, Port: AnyPort, Command: AnyCommand}
	assert.True(f.Match(sw))
	assert.False(f.Match(ping))

	f = Filter{Type: AnyType, Target: AnyTarget, Port: asb.NoPort, Command: AnyCommand}
	assert.True(f.Match(sw), "NoPort equals the port wildcard")
}

func TestRegistry_Dispatch(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	require.Equal(0, r.Len())
	require.Equal(0, r.Dispatch(asb.NewUnicast(1, 2, 0, asb.CmdPing)))

	var order []string
	r.Register(MatchAll, func(asb.Packet) { order = append(order, "all") })
	r.Register(ForCommand(asb.CmdPing), func(asb.Packet) { order = append(order, "ping") })
	r.Register(ForCommand(asb.CmdPong), func(asb.Packet) { order = append(order, "pong") })
	r.Register(MatchAll, nil)
	require.Equal(3, r.Len())

	n := r.Dispatch(asb.NewUnicast(1, 2, 0, asb.CmdPing))
	require.Equal(2, n)
	require.Equal([]string{"all", "ping"}, order)
}

func TestRegistry_RegisterFromHandler(t *testing.T) {
	require := require.New(t)

	var r Registry
	calls := 0
	r.Register(MatchAll, func(asb.Packet) {
		r.Register(MatchAll, func(asb.Packet) { calls++ })
	})

	require.Equal(1, r.Dispatch(asb.NewBroadcast(1, 1)))
	require.Equal(0, calls)
	require.Equal(2, r.Len())
}

func TestRegistry_Concurrent(t *testing.T) {
	require := require.New(t)

	r := NewRegistry()
	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(MatchAll, func(asb.Packet) {
				mu.Lock()
				total++
				mu.Unlock()
			})
		}()
		go func() {
			defer wg.Done()
			r.Dispatch(asb.NewBroadcast(1, 1))
		}()
	}
	wg.Wait()

	require.Equal(8, r.Len())
	require.Equal(8, r.Dispatch(asb.NewBroadcast(1, 1)))
}

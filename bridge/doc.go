// Package bridge relays ASB traffic between a serial bus link and an MQTT broker.
//
// Frames read from the bus are decoded and dispatched through a hook registry. The default
// hooks publish:
//
//	<base>/<target>/get/switch   1-bit state messages (0x51), retained
//	<base>/<target>/get/level    percental state messages (0x52), retained
//	<base>/<source>/lastboot     boot notifications (0x21), unix seconds, not retained
//	<base>/<source>/get/<qty>    sensor readings, retained
//
// Addresses in topics are four lower-case hex digits, e.g. "asysbus/0122/get/switch".
// A unicast PING addressed to the bridge's own node ID is answered with a PONG.
//
// In the other direction the bridge subscribes to "<base>/+/set/#". A message on
// "<base>/<addr>/set/switch" or "<base>/<addr>/set/level" with a decimal payload is sent to
// the bus as a multicast frame from the bridge's node ID and echoed to the matching get topic.
//
// The bridge announces itself with "ON" on "<base>/LWT"; clients built with NewClient
// register "OFF" as the last will on the same topic.
package bridge

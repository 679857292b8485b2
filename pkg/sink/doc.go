/*
Package sink provides the diagnostic outputs the action logger writes to.

A Sink offers the four capabilities of a browser console: Log, Group, GroupCollapsed and
GroupEnd. Style strings use a tiny CSS subset ("font-weight: bold; color: #4caf50;")
that Console translates to terminal attributes and other sinks may ignore.

Implementations:
  - Console: indented, colored terminal output (termenv), YAML payloads.
  - Slog: one structured record per message.
  - Recorder: in-memory capture for tests and embedding hosts.
  - Multi: fan-out.
*/
package sink

// Package transcribe runs downloaded episode audio through WhisperX and
// returns plain transcript text.
//
// WhisperX is invoked through uvx so no local Python environment management is
// required. The command runner is injectable for tests; production use shells
// out and reads the JSON segment output WhisperX writes next to the audio.
package transcribe

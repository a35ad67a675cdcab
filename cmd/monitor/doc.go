/*

Monitor runs the supplied command and, based on its exit code, reports
successful or failed execution to https://healthchecks.io.

Healthchecks.io is a web service for monitoring periodic tasks. It's like a
dead man's switch for your cron jobs. You get alerted if they don't run on time
or terminate with a failure.

Install:

	go install bdd.fi/x/hcmon/cmd/monitor@latest

Usage:

	HEALTHCHECKS_CHECK_ID=uuid monitor [-t] -X "command arg..."

Flags:

	-t, --timer
		Send a start ping before running the command, so the run duration is measured
	-X, --exec=""
		Command to execute and monitor. Split on single spaces; not interpreted by a shell
	--quiet
		Don't tee stdout of the command to terminal
	--silent
		Don't tee stdout and stderr of the command to terminal
	--no-output-in-ping
		Don't send stdout and stderr with pings
	-v, --verbose
		Log pings and command execution

Environment:

	HEALTHCHECKS_CHECK_ID
		UUID of the check. Required
	HEALTHCHECKS_USERAGENT
		User-Agent header of ping requests
	HEALTHCHECKS_PING_URL="https://hc-ping.com"
		Ping API base URL, for self hosted instances
	HEALTHCHECKS_RETRIES=2
		Number of times a ping will be retried if it fails with a transient error
	HEALTHCHECKS_TIMEOUT="5s"
		Client timeout per request

Variables can also be set in a .env file in the working directory.

Exit Status

The exit code of the command, when it exits on its own. 128 plus the signal
number, when the command is killed by a signal; no success or failure is
reported then, as the run is neither. 125, when the command could not be run
or a ping could not be sent.

The command is not run if the start ping of -t fails.

Example Use

Certificate Renewal:

	monitor -t -X "dehydrated --cron --config example.com.conf"

Backup:

	# Do not attach output to ping.
	# Backup software may leak filenames and paths.

	monitor --no-output-in-ping -X "restic backup /home /etc"

*/
package main // import "bdd.fi/x/hcmon/cmd/monitor"

// Package cli implements the interactive weighttracker shell.
//
// The shell resumes a cached session when one exists and otherwise starts
// logged out. Commands:
//
//	Logged out:
//	  help                show available commands
//	  register            create an account
//	  login               authenticate
//	  exit | quit         leave the program
//
//	Logged in:
//	  (l)ist              list weights, newest first, with the goal difference
//	  add                 record a weight (date MM/DD/YY)
//	  edit [n]            change entry n of the last listing
//	  delete [n]          delete entry n of the last listing
//	  clear               delete all entries
//	  goal [weight]       set the target weight (0 removes it)
//	  phone [number]      register a 10-digit phone number
//	  sms on|off          opt in or out of the goal text message
//	  profile             show goal, phone number and SMS status
//	  export              upload a CSV backup
//	  logout              end the session
//	  exit | quit         leave the program
package cli

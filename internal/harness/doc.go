// Package harness runs conformance scenarios against competition documents.
//
// A scenario loads a document, optionally applies score updates, and checks
// the derived results: match outcomes, resolved references, league table
// order, maybe-reachability and expected load errors.
//
// # Scenario Format
//
//	name: pool_complete
//	description: "Pool A finishes and the semi-finals resolve"
//	document: ../competitions/cup.json
//	scores:
//	  - match: P:A:PA4
//	    home: [25, 25]
//	    away: [10, 10]
//	expect:
//	  outcomes:
//	    - match: P:A:PA4
//	      winner: home
//	      homeSets: 2
//	  resolve:
//	    "{P:A:league:1}": TC
//	  standings:
//	    - group: P:A
//	      order: [TC, TA, TB, TD]
//	  maybe:
//	    - group: F:KO
//	      team: TA
//	      maybe: false
//
// A scenario that expects the document to be rejected sets expect.error to
// a validation code (E221) or a message fragment instead.
//
// # Deterministic Snapshots
//
// Every passing run exports its results through an in-memory report store
// with a fixed report ID, so the snapshot compared against golden files is
// exactly what `vbc export` would persist.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/pool_complete.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness

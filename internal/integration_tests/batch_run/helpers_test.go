package integration_tests

// twoWorkflowsJSON is a batch of a three-task pipeline and a one-task
// workflow on two workers. Its schedule is:
//
//	lint    w1 [1,2]
//	compile w1 [2,5]
//	render  w2 [3,7]
//	test    w1 [5,7]
const twoWorkflowsJSON = `{
	"workers_count": 2,
	"workflows": [
		{
			"name": "build",
			"scheduled_at": 0,
			"tasks": [
				{"name": "compile", "description": "go build", "cost": 3, "dependencies": []},
				{"name": "test", "description": "go test", "cost": 2, "dependencies": ["compile"]},
				{"name": "lint", "description": "", "cost": 1, "dependencies": []}
			]
		},
		{
			"name": "docs",
			"scheduled_at": 0,
			"tasks": [
				{"name": "render", "description": "", "cost": 4, "dependencies": []}
			]
		}
	]
}`

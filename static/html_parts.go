package static

// Head opens the page and the form; the chart is rendered after it, then
// LogsOpen, the sweep log and Tail.
var (
	Head = `
    <!DOCTYPE html>
    <html>
    <head>
        <title>Voronoi / Delaunay</title>
        <style>
            body {
                background-color: #1F1F1F;
                color: #d3d3d3;
                font-family: Consolas, monospace;
                overflow: hidden;
            }

            #container {
                display: flex;
                width: 100%;
                height: 100vh;
                box-sizing: border-box;
            }

            #left-container {
                width: 50%;
                padding: 10px;
                box-sizing: border-box;
            }

            #right-container {
                width: 50%;
                padding: 10px;
                box-sizing: border-box;
                border-left: 5px solid #757575;
                overflow: auto;
                background-color: #1e1e1e;
            }

            #logs {
                white-space: pre-wrap;
                word-wrap: break-word;
            }

            input[type="number"],
            input[type="submit"] {
                background-color: #2b2b2b;
                color: #d3d3d3;
                border: 1px solid #444;
                padding: 5px;
                margin: 5px 0;
                border-radius: 4px;
            }

            input[type="submit"]:hover {
                background-color: #444;
                cursor: pointer;
            }
        </style>
    </head>
    <body>
        <div id="container">
            <div id="left-container">
                <form id="diagram-form" method="POST" action="/">
                    <label for="width">Width (W):</label>
                    <input type="number" id="width" name="width" value="1000" min="100" max="5000">
                    <label for="height">Height (H):</label>
                    <input type="number" id="height" name="height" value="1000" min="100" max="5000"><br>
                    <label for="stations">Stations (n):</label>
                    <input type="number" id="stations" name="stations" value="12" min="1" max="2000">
                    <label for="random">Random:</label>
                    <input type="checkbox" id="random" name="random" value="true">
                    <label for="delaunay">Delaunay:</label>
                    <input type="checkbox" id="delaunay" name="delaunay" value="true" checked><br>
                    <input type="submit" value="Build">
                </form>
    `

	LogsOpen = `
            </div>
            <div id="right-container">
                <h1>Sweep log</h1>
                <div id="logs">`

	Tail = `
                </div>
            </div>
        </div>
    </body>
    </html>
    `
)

package renderer

// stealthScript evades the automation signals headless Chrome leaks to
// page scripts. Review widgets on larger retailers check these and swap
// in blocked or stripped-down markup when they fire.
// Based on puppeteer-extra-plugin-stealth evasions.
const stealthScript = `
(function() {
    'use strict';

    // navigator.webdriver is the canonical headless giveaway.
    Object.defineProperty(navigator, 'webdriver', {
        get: () => undefined,
        configurable: true
    });
    delete Object.getPrototypeOf(navigator).webdriver;

    // Headless Chrome ships an empty plugins array.
    const mockPlugins = [
        { name: 'Chrome PDF Plugin', description: 'Portable Document Format', filename: 'internal-pdf-viewer' },
        { name: 'Chrome PDF Viewer', description: '', filename: 'mhjfbmdgcfjbbpaeojofohoefgiehjai' },
        { name: 'Native Client', description: '', filename: 'internal-nacl-plugin' }
    ];
    Object.defineProperty(navigator, 'plugins', {
        get: () => {
            const arr = mockPlugins.map(p => Object.assign(Object.create(Plugin.prototype), p));
            arr.item = i => arr[i] || null;
            arr.namedItem = n => arr.find(p => p.name === n) || null;
            return arr;
        },
        configurable: true
    });

    // Real browsers always report at least one language.
    Object.defineProperty(navigator, 'languages', {
        get: () => ['en-US', 'en'],
        configurable: true
    });

    // window.chrome exists in headful Chrome but not headless.
    if (!window.chrome) {
        window.chrome = { runtime: {} };
    }

    // Permissions API behaves differently under automation.
    const originalQuery = window.navigator.permissions.query;
    window.navigator.permissions.query = (parameters) => (
        parameters.name === 'notifications'
            ? Promise.resolve({ state: Notification.permission })
            : originalQuery(parameters)
    );
})();
`
